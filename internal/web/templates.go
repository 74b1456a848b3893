package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/UnibsMatt/roomates/internal/api"
	"github.com/UnibsMatt/roomates/internal/session"
	"github.com/UnibsMatt/roomates/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"date":     func(t time.Time) string { return t.Format("02/01/2006") },
	"datetime": func(t time.Time) string { return t.Format("02/01/2006 15:04") },
}

// pages holds one template set per page, each sharing the base layout.
var pages = func() map[string]*template.Template {
	names := []string{
		"rooms.html",
		"room_detail.html",
		"login.html",
		"register.html",
		"my_rooms.html",
		"room_form.html",
		"admin.html",
		"legal.html",
	}
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(
			template.New("base.html").Funcs(pageFuncs).ParseFS(templateFS, "templates/base.html", "templates/"+name),
		)
	}
	return out
}()

// Base is the data every page shares: navbar state and the cookie banner.
type Base struct {
	User         *session.Session
	CookieBanner bool
	Year         int
}

func (h *Handler) base(r *http.Request, sid string) Base {
	return Base{
		User:         h.currentSession(r, sid),
		CookieBanner: !h.cookies.Acknowledged(r.Context(), sid),
		Year:         time.Now().Year(),
	}
}

// render executes a page into a buffer first so a template error can still
// become a 500 instead of a half-written body.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	tpl, ok := pages[page]
	if !ok {
		h.logger.Error("unknown template", zap.String("page", page))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		h.logger.Error("template render failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Per-page view models.

type roomsData struct {
	Base
	Rooms    []api.Room
	MinPrice string
	MaxPrice string
	Sort     view.SortKey
	State    view.State
}

type roomDetailData struct {
	Base
	Room     *api.Room
	Carousel view.Carousel
	IsOwner  bool
	Form     view.ApplicationForm
	Errors   map[string]string
	State    view.State
}

type authData struct {
	Base
	Email string
	Name  string
	State view.State
}

type myRoomsData struct {
	Base
	Rooms        []api.Room
	OpenRoomID   int64
	Applications []api.Application
	AppsState    view.State
	State        view.State
}

type roomFormData struct {
	Base
	Editing bool
	RoomID  int64
	Form    view.RoomForm
	Images  []api.RoomImage
	Errors  map[string]string
	State   view.State
}

type adminData struct {
	Base
	Admin view.AdminState
}

type legalData struct {
	Base
}
