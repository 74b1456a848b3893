package web

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/UnibsMatt/roomates/internal/api"
	"github.com/UnibsMatt/roomates/internal/view"
)

const maxUploadMemory = 32 << 20

// handleCreateRoom publishes a new listing: the room record first, then each
// selected image uploaded sequentially against the returned id. The sequence
// is best-effort; a failed upload is reported but earlier ones stay.
func (h *Handler) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	sess, sid, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.render(w, http.StatusOK, "room_form.html", roomFormData{Base: h.base(r, sid)})
	case http.MethodPost:
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		form := roomFormFromRequest(r)
		data := roomFormData{Base: h.base(r, sid), Form: form}

		if errs := form.Validate(); len(errs) > 0 {
			data.Errors = errs
			h.render(w, http.StatusOK, "room_form.html", data)
			return
		}

		room, err := h.backend.CreateRoom(r.Context(), sess.Token, form.Create())
		if err != nil {
			if h.handleExpired(w, r, sid, err) {
				return
			}
			data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: errorMessage(err)})
			h.render(w, http.StatusOK, "room_form.html", data)
			return
		}

		report := h.uploadImages(r, sess.Token, room.ID)
		if !report.OK() {
			if h.handleExpired(w, r, sid, report.Err) {
				return
			}
			// The room exists and earlier photos are already attached; only
			// the failed upload needs attention.
			data.Editing = true
			data.RoomID = room.ID
			data.Images = report.Uploaded
			data.State = view.Reduce(data.State, view.Event{
				Kind:    view.EventFail,
				Message: uploadFailureMessage(report),
			})
			h.render(w, http.StatusOK, "room_form.html", data)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/rooms/%d", room.ID), http.StatusSeeOther)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// editRoom serves /rooms/{id}/edit. Only the owner may see or change a
// listing; everyone else is sent back to the index.
func (h *Handler) editRoom(w http.ResponseWriter, r *http.Request, roomID int64) {
	sess, sid, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	room, err := h.backend.GetRoom(r.Context(), roomID)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if room.OwnerID != sess.UserID {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.render(w, http.StatusOK, "room_form.html", roomFormData{
			Base:    h.base(r, sid),
			Editing: true,
			RoomID:  roomID,
			Form:    view.FormFromRoom(room),
			Images:  room.Images,
		})
	case http.MethodPost:
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		form := roomFormFromRequest(r)
		data := roomFormData{Base: h.base(r, sid), Editing: true, RoomID: roomID, Form: form, Images: room.Images}

		if errs := form.Validate(); len(errs) > 0 {
			data.Errors = errs
			h.render(w, http.StatusOK, "room_form.html", data)
			return
		}

		if _, err := h.backend.UpdateRoom(r.Context(), sess.Token, roomID, form.Update()); err != nil {
			if h.handleExpired(w, r, sid, err) {
				return
			}
			data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: errorMessage(err)})
			h.render(w, http.StatusOK, "room_form.html", data)
			return
		}

		report := h.uploadImages(r, sess.Token, roomID)
		if !report.OK() {
			if h.handleExpired(w, r, sid, report.Err) {
				return
			}
			data.Images = append(data.Images, report.Uploaded...)
			data.State = view.Reduce(data.State, view.Event{
				Kind:    view.EventFail,
				Message: uploadFailureMessage(report),
			})
			h.render(w, http.StatusOK, "room_form.html", data)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/rooms/%d", roomID), http.StatusSeeOther)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// deleteRoomImage removes one photo immediately, then returns to the edit
// form.
func (h *Handler) deleteRoomImage(w http.ResponseWriter, r *http.Request, roomID, imageID int64) {
	sess, sid, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	if err := h.backend.DeleteImage(r.Context(), sess.Token, roomID, imageID); err != nil {
		if h.handleExpired(w, r, sid, err) {
			return
		}
		h.logger.Warn("image delete failed",
			zap.Int64("room_id", roomID),
			zap.Int64("image_id", imageID),
			zap.Error(err),
		)
	}
	http.Redirect(w, r, fmt.Sprintf("/rooms/%d/edit", roomID), http.StatusSeeOther)
}

// uploadImages runs the strictly-ordered upload sequence over the files
// posted under the "images" field.
func (h *Handler) uploadImages(r *http.Request, token string, roomID int64) api.UploadReport {
	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["images"]
	}
	uploads := make([]api.Upload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.logger.Warn("skipping unreadable upload", zap.String("filename", fh.Filename), zap.Error(err))
			continue
		}
		opened = append(opened, f)
		uploads = append(uploads, api.Upload{Filename: fh.Filename, File: f})
	}
	return api.UploadAll(r.Context(), h.backend, token, roomID, uploads)
}

func uploadFailureMessage(report api.UploadReport) string {
	return fmt.Sprintf("Caricamento della foto %d non riuscito: %s. Le foto precedenti sono state salvate.",
		report.FailedStep+1, errorMessage(report.Err))
}

func roomFormFromRequest(r *http.Request) view.RoomForm {
	return view.RoomForm{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Location:    r.PostFormValue("location"),
		Price:       r.PostFormValue("price"),
	}
}
