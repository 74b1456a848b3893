package web

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/UnibsMatt/roomates/internal/view"
)

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	sid := h.sid(w, r)
	switch r.Method {
	case http.MethodGet:
		h.render(w, http.StatusOK, "login.html", authData{Base: h.base(r, sid)})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		_, err := h.sessions.Login(r.Context(), sid, email, password)
		if err != nil {
			data := authData{Base: h.base(r, sid), Email: email}
			msg := "Credenziali non valide."
			if !isUnauthorized(err) {
				msg = errorMessage(err)
			}
			data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: msg})
			h.render(w, http.StatusOK, "login.html", data)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	sid := h.sid(w, r)
	switch r.Method {
	case http.MethodGet:
		h.render(w, http.StatusOK, "register.html", authData{Base: h.base(r, sid)})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(r.PostFormValue("name"))
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		data := authData{Base: h.base(r, sid), Name: name, Email: email}
		if len(password) < 6 {
			data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: "La password deve essere di almeno 6 caratteri."})
			h.render(w, http.StatusOK, "register.html", data)
			return
		}

		if _, err := h.sessions.Register(r.Context(), sid, name, email, password); err != nil {
			data.State = view.Reduce(data.State, view.Event{Kind: view.EventFail, Message: errorMessage(err)})
			h.render(w, http.StatusOK, "register.html", data)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLogout always clears local state; the server-side call inside the
// manager is best-effort.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sid := h.sid(w, r)
	if err := h.sessions.Logout(r.Context(), sid); err != nil {
		h.logger.Warn("failed to clear session", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
