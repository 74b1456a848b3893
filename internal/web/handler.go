package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/UnibsMatt/roomates/internal/api"
	"github.com/UnibsMatt/roomates/internal/session"
)

// sidCookie carries the opaque session id. It identifies the browser, not
// the user; the authenticated session lives server-side under this id.
const sidCookie = "roomates_sid"

// Backend is the slice of the API client the pages call. *api.Client
// satisfies it; tests substitute a fake to count and steer calls.
type Backend interface {
	ListRooms(ctx context.Context, minPrice, maxPrice *float64) ([]api.Room, error)
	GetRoom(ctx context.Context, id int64) (*api.Room, error)
	CreateRoom(ctx context.Context, token string, data api.RoomCreate) (*api.Room, error)
	UpdateRoom(ctx context.Context, token string, id int64, data api.RoomUpdate) (*api.Room, error)
	DeleteRoom(ctx context.Context, token string, id int64) error
	CloseRoom(ctx context.Context, token string, id int64) (*api.Room, error)
	ListMyRooms(ctx context.Context, token string) ([]api.Room, error)
	UploadImage(ctx context.Context, token string, roomID int64, filename string, file io.Reader) (*api.RoomImage, error)
	DeleteImage(ctx context.Context, token string, roomID, imageID int64) error
	SubmitApplication(ctx context.Context, roomID int64, payload api.ApplicationPayload) (*api.Application, error)
	ListRoomApplications(ctx context.Context, token string, roomID int64) ([]api.Application, error)
	ListAllApplications(ctx context.Context, adminPassword string) ([]api.Application, error)
}

// Handler owns every page of the site.
type Handler struct {
	backend  Backend
	sessions *session.Manager
	adminPw  *session.AdminCache
	cookies  *session.CookieNotice
	logger   *zap.Logger
}

func NewHandler(backend Backend, sessions *session.Manager, adminPw *session.AdminCache, cookies *session.CookieNotice, logger *zap.Logger) *Handler {
	return &Handler{
		backend:  backend,
		sessions: sessions,
		adminPw:  adminPw,
		cookies:  cookies,
		logger:   logger,
	}
}

// RegisterRoutes wires every page onto the router.
func (h *Handler) RegisterRoutes(r *Router) {
	r.Handle("/", h.handleIndex)
	r.Handle("/rooms/new", h.handleCreateRoom)
	r.Handle("/rooms/", h.handleRoomSubtree)
	r.Handle("/login", h.handleLogin)
	r.Handle("/register", h.handleRegister)
	r.Handle("/logout", h.handleLogout)
	r.Handle("/my-rooms", h.handleMyRooms)
	r.Handle("/my-rooms/", h.handleMyRoomActions)
	r.Handle("/admin", h.handleAdmin)
	r.Handle("/admin/export", h.handleAdminExport)
	r.Handle("/admin/logout", h.handleAdminLogout)
	r.Handle("/cookies/accept", h.handleCookieAccept)
	r.Handle("/legal", h.handleLegal)
	r.Handle("/health", h.handleHealth)
}

// sid returns the browser's session id, minting the cookie on first contact.
func (h *Handler) sid(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sidCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sidCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// currentSession returns the stored session, or nil when signed out.
func (h *Handler) currentSession(r *http.Request, sid string) *session.Session {
	sess, err := h.sessions.Current(r.Context(), sid)
	if err != nil {
		return nil
	}
	return sess
}

// requireSession gates a page on authentication. No session means an
// immediate redirect to /login without touching the backend.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, string, bool) {
	sid := h.sid(w, r)
	sess := h.currentSession(r, sid)
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, sid, false
	}
	return sess, sid, true
}

// handleExpired reacts to a backend 401 on an authenticated page: the token
// is dead, so the local session is cleared and the visitor sent to /login.
func (h *Handler) handleExpired(w http.ResponseWriter, r *http.Request, sid string, err error) bool {
	if !isUnauthorized(err) {
		return false
	}
	if clearErr := h.sessions.Logout(r.Context(), sid); clearErr != nil {
		h.logger.Warn("failed to clear expired session", zap.Error(clearErr))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

func isUnauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}

// detail pulls the server-supplied message out of a backend error, when the
// failure carried one.
func detail(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) handleLegal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sid := h.sid(w, r)
	h.render(w, http.StatusOK, "legal.html", legalData{Base: h.base(r, sid)})
}

func (h *Handler) handleCookieAccept(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sid := h.sid(w, r)
	if err := h.cookies.Acknowledge(r.Context(), sid); err != nil {
		h.logger.Warn("failed to record cookie acknowledgment", zap.Error(err))
	}
	ref := r.Header.Get("Referer")
	if ref == "" {
		ref = "/"
	}
	http.Redirect(w, r, ref, http.StatusSeeOther)
}
