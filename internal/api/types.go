package api

import "time"

// TokenResponse is what /auth/register and /auth/login hand back. The token
// is an opaque bearer credential; it is never decoded on this side.
type TokenResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// RoomImage belongs to a Room. Slice order is display order.
type RoomImage struct {
	ID       int64  `json:"id"`
	RoomID   int64  `json:"room_id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Room is a rentable listing as the backend returns it.
type Room struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Price       float64     `json:"price"`
	IsClosed    bool        `json:"is_closed"`
	OwnerID     int64       `json:"owner_id"`
	OwnerName   string      `json:"owner_name"`
	Images      []RoomImage `json:"images"`
	CreatedAt   time.Time   `json:"created_at"`
}

// RoomCreate is the POST /rooms body. Blank optionals are omitted from the
// wire rather than sent as empty strings.
type RoomCreate struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Price       float64 `json:"price"`
}

// RoomUpdate is the PUT /rooms/:id body.
type RoomUpdate struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

// ApplicationPayload is a tenant candidacy as submitted.
type ApplicationPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Course   string `json:"course"`
	Sex      string `json:"sex"`
	Age      int    `json:"age"`
	Message  string `json:"message,omitempty"`
}

// Application is a stored candidacy. RoomID is zero for the single-listing
// deployment where applications are not tied to a room record.
type Application struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id,omitempty"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Course    string    `json:"course"`
	Sex       string    `json:"sex"`
	Age       int       `json:"age"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
