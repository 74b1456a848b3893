package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/UnibsMatt/roomates/internal/view"
)

// handleAdmin serves the password-gated applications overview. The password
// is never checked locally; every unlock is a real fetch, and the backend's
// verdict decides. A cached password from the same visit re-authenticates
// silently on reload.
func (h *Handler) handleAdmin(w http.ResponseWriter, r *http.Request) {
	sid := h.sid(w, r)

	switch r.Method {
	case http.MethodGet:
		pw, ok := h.adminPw.Get(r.Context(), sid)
		if !ok {
			h.render(w, http.StatusOK, "admin.html", adminData{Base: h.base(r, sid)})
			return
		}
		apps, err := h.backend.ListAllApplications(r.Context(), pw)
		if err != nil {
			// Stale or revoked credential: force a fresh entry.
			if dropErr := h.adminPw.Drop(r.Context(), sid); dropErr != nil {
				h.logger.Warn("failed to drop admin credential", zap.Error(dropErr))
			}
			h.render(w, http.StatusOK, "admin.html", adminData{
				Base:  h.base(r, sid),
				Admin: view.AdminRejected(err),
			})
			return
		}
		h.render(w, http.StatusOK, "admin.html", adminData{
			Base:  h.base(r, sid),
			Admin: view.AdminUnlocked(apps),
		})
	case http.MethodPost:
		pw := strings.TrimSpace(r.PostFormValue("password"))
		if pw == "" {
			h.render(w, http.StatusOK, "admin.html", adminData{
				Base:  h.base(r, sid),
				Admin: view.AdminState{Phase: view.AdminFailed, Message: view.AdminMsgWrongPassword},
			})
			return
		}
		apps, err := h.backend.ListAllApplications(r.Context(), pw)
		if err != nil {
			if dropErr := h.adminPw.Drop(r.Context(), sid); dropErr != nil {
				h.logger.Warn("failed to drop admin credential", zap.Error(dropErr))
			}
			h.render(w, http.StatusOK, "admin.html", adminData{
				Base:  h.base(r, sid),
				Admin: view.AdminRejected(err),
			})
			return
		}
		if err := h.adminPw.Put(r.Context(), sid, pw); err != nil {
			h.logger.Warn("failed to cache admin credential", zap.Error(err))
		}
		h.render(w, http.StatusOK, "admin.html", adminData{
			Base:  h.base(r, sid),
			Admin: view.AdminUnlocked(apps),
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminLogout forgets the cached password and locks the area again.
func (h *Handler) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sid := h.sid(w, r)
	if err := h.adminPw.Drop(r.Context(), sid); err != nil {
		h.logger.Warn("failed to drop admin credential", zap.Error(err))
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleAdminExport streams the current applications as an xlsx workbook.
// It rides the cached credential; a locked visitor is sent to the gate.
func (h *Handler) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sid := h.sid(w, r)
	pw, ok := h.adminPw.Get(r.Context(), sid)
	if !ok {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	apps, err := h.backend.ListAllApplications(r.Context(), pw)
	if err != nil {
		if dropErr := h.adminPw.Drop(r.Context(), sid); dropErr != nil {
			h.logger.Warn("failed to drop admin credential", zap.Error(dropErr))
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	data, err := exportApplicationsXLSX(apps)
	if err != nil {
		h.logger.Error("applications export failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("candidature_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}
