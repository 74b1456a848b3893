package view

import (
	"strconv"
	"strings"

	"github.com/UnibsMatt/roomates/internal/api"
)

// RoomForm is the raw create/edit listing form.
type RoomForm struct {
	Title       string
	Description string
	Location    string
	Price       string
}

func (f RoomForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Il titolo è obbligatorio."
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || price <= 0 {
		errs["price"] = "Inserisci un prezzo valido."
	}
	return errs
}

// Create builds the POST body from a validated form. Blank optionals are
// omitted via the payload's omitempty tags.
func (f RoomForm) Create() api.RoomCreate {
	price, _ := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	return api.RoomCreate{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
		Price:       price,
	}
}

func (f RoomForm) Update() api.RoomUpdate {
	price, _ := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	return api.RoomUpdate{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
		Price:       price,
	}
}

// FormFromRoom pre-fills the edit form from an existing listing.
func FormFromRoom(r *api.Room) RoomForm {
	return RoomForm{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Price:       strconv.FormatFloat(r.Price, 'f', -1, 64),
	}
}
