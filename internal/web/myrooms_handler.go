package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/UnibsMatt/roomates/internal/view"
)

// handleMyRooms renders the owner dashboard. The applications panel for one
// room is fetched lazily, only when expanded via ?apps=ID.
func (h *Handler) handleMyRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, sid, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	data := myRoomsData{Base: h.base(r, sid)}
	if msg := r.URL.Query().Get("err"); msg != "" {
		data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: msg})
	}

	rooms, err := h.backend.ListMyRooms(r.Context(), sess.Token)
	if err != nil {
		if h.handleExpired(w, r, sid, err) {
			return
		}
		data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: errorMessage(err)})
		h.render(w, http.StatusOK, "my_rooms.html", data)
		return
	}
	data.Rooms = rooms

	if appsFor := r.URL.Query().Get("apps"); appsFor != "" {
		roomID, convErr := strconv.ParseInt(appsFor, 10, 64)
		if convErr == nil {
			data.OpenRoomID = roomID
			apps, appsErr := h.backend.ListRoomApplications(r.Context(), sess.Token, roomID)
			if appsErr != nil {
				if h.handleExpired(w, r, sid, appsErr) {
					return
				}
				data.AppsState = view.Reduce(data.AppsState, view.Event{Kind: view.EventFail, Message: errorMessage(appsErr)})
			} else {
				data.Applications = apps
				data.AppsState = view.Reduce(data.AppsState, view.Event{Kind: view.EventSucceed})
			}
		}
	}

	h.render(w, http.StatusOK, "my_rooms.html", data)
}

// handleMyRoomActions covers POST /my-rooms/{id}/close and
// POST /my-rooms/{id}/delete.
func (h *Handler) handleMyRoomActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, sid, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/my-rooms/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	roomID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var actionErr error
	switch parts[1] {
	case "close":
		_, actionErr = h.backend.CloseRoom(r.Context(), sess.Token, roomID)
	case "delete":
		actionErr = h.backend.DeleteRoom(r.Context(), sess.Token, roomID)
	default:
		http.NotFound(w, r)
		return
	}

	if actionErr != nil {
		if h.handleExpired(w, r, sid, actionErr) {
			return
		}
		http.Redirect(w, r, "/my-rooms?err="+url.QueryEscape(errorMessage(actionErr)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/my-rooms", http.StatusSeeOther)
}
