package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/UnibsMatt/roomates/internal/view"
)

// handleIndex renders the public room list. Filtering and sorting are
// projections over the one fetched set, never server queries.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		// Unknown paths fall back to the listing, like the SPA catch-all.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sid := h.sid(w, r)

	data := roomsData{
		Base:     h.base(r, sid),
		MinPrice: r.URL.Query().Get("min_price"),
		MaxPrice: r.URL.Query().Get("max_price"),
		Sort:     view.ParseSortKey(r.URL.Query().Get("sort")),
	}

	rooms, err := h.backend.ListRooms(r.Context(), nil, nil)
	if err != nil {
		data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: errorMessage(err)})
		h.render(w, http.StatusOK, "rooms.html", data)
		return
	}

	rooms = view.FilterByPrice(rooms, parsePrice(data.MinPrice), parsePrice(data.MaxPrice))
	data.Rooms = view.SortRooms(rooms, data.Sort)
	data.State = view.Reduce(data.State, view.Event{Kind: view.EventSucceed})
	h.render(w, http.StatusOK, "rooms.html", data)
}

// handleRoomSubtree dispatches /rooms/{id}, /rooms/{id}/apply,
// /rooms/{id}/edit and /rooms/{id}/images/{imgID}/delete.
func (h *Handler) handleRoomSubtree(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/rooms/"), "/")
	roomID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.roomDetail(w, r, roomID)
	case len(parts) == 2 && parts[1] == "apply":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.applyToRoom(w, r, roomID)
	case len(parts) == 2 && parts[1] == "edit":
		h.editRoom(w, r, roomID)
	case len(parts) == 4 && parts[1] == "images" && parts[3] == "delete":
		imageID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.deleteRoomImage(w, r, roomID, imageID)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) roomDetail(w http.ResponseWriter, r *http.Request, roomID int64) {
	sid := h.sid(w, r)
	data := roomDetailData{Base: h.base(r, sid)}

	room, err := h.backend.GetRoom(r.Context(), roomID)
	if err != nil {
		data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: errorMessage(err)})
		h.render(w, http.StatusOK, "room_detail.html", data)
		return
	}

	imgIdx, _ := strconv.Atoi(r.URL.Query().Get("img"))
	data.Room = room
	data.Carousel = view.NewCarousel(len(room.Images), imgIdx)
	data.IsOwner = data.User != nil && data.User.UserID == room.OwnerID
	h.render(w, http.StatusOK, "room_detail.html", data)
}

// applyToRoom validates locally first: an invalid form never reaches the
// submit endpoint. A valid one issues exactly one POST.
func (h *Handler) applyToRoom(w http.ResponseWriter, r *http.Request, roomID int64) {
	sid := h.sid(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := view.ApplicationForm{
		FullName: r.PostFormValue("full_name"),
		Email:    r.PostFormValue("email"),
		Phone:    r.PostFormValue("phone"),
		Course:   r.PostFormValue("course"),
		Sex:      r.PostFormValue("sex"),
		Age:      r.PostFormValue("age"),
		Message:  r.PostFormValue("message"),
	}

	data := roomDetailData{Base: h.base(r, sid), Form: form}
	if errs := form.Validate(); len(errs) > 0 {
		data.Errors = errs
		room, err := h.backend.GetRoom(r.Context(), roomID)
		if err == nil {
			data.Room = room
			data.Carousel = view.NewCarousel(len(room.Images), 0)
		}
		h.render(w, http.StatusOK, "room_detail.html", data)
		return
	}

	_, submitErr := h.backend.SubmitApplication(r.Context(), roomID, form.Payload())

	room, err := h.backend.GetRoom(r.Context(), roomID)
	if err == nil {
		data.Room = room
		data.Carousel = view.NewCarousel(len(room.Images), 0)
	}
	if submitErr != nil {
		data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: errorMessage(submitErr)})
		h.render(w, http.StatusOK, "room_detail.html", data)
		return
	}
	data.Form = view.ApplicationForm{}
	data.State = view.Reduce(data.State, view.Event{Kind: view.EventSucceed, Message: "La tua candidatura è stata inviata con successo."})
	h.render(w, http.StatusOK, "room_detail.html", data)
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// errorMessage extracts the display message for a failed backend call.
func errorMessage(err error) string {
	if msg := detail(err); msg != "" {
		return msg
	}
	return "Qualcosa è andato storto. Riprova."
}
