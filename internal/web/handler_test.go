package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/UnibsMatt/roomates/internal/api"
	"github.com/UnibsMatt/roomates/internal/session"
	"github.com/UnibsMatt/roomates/internal/store"
)

// memKV is an in-memory store.KV for handler tests.
type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (m *memKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// fakeBackend counts calls and serves canned data.
type fakeBackend struct {
	rooms []api.Room
	apps  []api.Application

	listRoomsCalls   int
	getRoomCalls     int
	myRoomsCalls     int
	submitCalls      int
	listAllCalls     int
	listAllPasswords []string
	listAllErr       error
	submitErr        error
	myRoomsErr       error
}

func (f *fakeBackend) ListRooms(ctx context.Context, minPrice, maxPrice *float64) ([]api.Room, error) {
	f.listRoomsCalls++
	return f.rooms, nil
}

func (f *fakeBackend) GetRoom(ctx context.Context, id int64) (*api.Room, error) {
	f.getRoomCalls++
	for i := range f.rooms {
		if f.rooms[i].ID == id {
			return &f.rooms[i], nil
		}
	}
	return nil, &api.Error{Status: http.StatusNotFound, Detail: "Annuncio non trovato"}
}

func (f *fakeBackend) CreateRoom(ctx context.Context, token string, data api.RoomCreate) (*api.Room, error) {
	return &api.Room{ID: 100, Title: data.Title, Price: data.Price, OwnerID: 9}, nil
}

func (f *fakeBackend) UpdateRoom(ctx context.Context, token string, id int64, data api.RoomUpdate) (*api.Room, error) {
	return &api.Room{ID: id, Title: data.Title, Price: data.Price, OwnerID: 9}, nil
}

func (f *fakeBackend) DeleteRoom(ctx context.Context, token string, id int64) error { return nil }

func (f *fakeBackend) CloseRoom(ctx context.Context, token string, id int64) (*api.Room, error) {
	return &api.Room{ID: id, IsClosed: true, OwnerID: 9}, nil
}

func (f *fakeBackend) ListMyRooms(ctx context.Context, token string) ([]api.Room, error) {
	f.myRoomsCalls++
	if f.myRoomsErr != nil {
		return nil, f.myRoomsErr
	}
	return f.rooms, nil
}

func (f *fakeBackend) UploadImage(ctx context.Context, token string, roomID int64, filename string, file io.Reader) (*api.RoomImage, error) {
	return &api.RoomImage{ID: 1, RoomID: roomID, Filename: filename}, nil
}

func (f *fakeBackend) DeleteImage(ctx context.Context, token string, roomID, imageID int64) error {
	return nil
}

func (f *fakeBackend) SubmitApplication(ctx context.Context, roomID int64, payload api.ApplicationPayload) (*api.Application, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &api.Application{ID: 1, RoomID: roomID, FullName: payload.FullName}, nil
}

func (f *fakeBackend) ListRoomApplications(ctx context.Context, token string, roomID int64) ([]api.Application, error) {
	return f.apps, nil
}

func (f *fakeBackend) ListAllApplications(ctx context.Context, adminPassword string) ([]api.Application, error) {
	f.listAllCalls++
	f.listAllPasswords = append(f.listAllPasswords, adminPassword)
	if f.listAllErr != nil {
		return nil, f.listAllErr
	}
	return f.apps, nil
}

// fakeAuth backs the session manager in handler tests.
type fakeAuth struct{}

func (fakeAuth) Register(ctx context.Context, name, email, password string) (*api.TokenResponse, error) {
	return &api.TokenResponse{Token: "tok", UserID: 9, Email: email, Name: name}, nil
}

func (fakeAuth) Login(ctx context.Context, email, password string) (*api.TokenResponse, error) {
	return &api.TokenResponse{Token: "tok", UserID: 9, Email: email, Name: "Anna"}, nil
}

func (fakeAuth) Logout(ctx context.Context, token string) error { return nil }

type testEnv struct {
	handler  *Handler
	router   *Router
	backend  *fakeBackend
	sessions *session.Manager
	adminPw  *session.AdminCache
	kv       *memKV
}

func newTestEnv(backend *fakeBackend) *testEnv {
	kv := newMemKV()
	logger := zap.NewNop()
	sessions := session.NewManager(fakeAuth{}, session.NewKVStore(kv, time.Hour), logger)
	adminPw := session.NewAdminCache(kv, 30*time.Minute)
	cookies := session.NewCookieNotice(kv)

	h := NewHandler(backend, sessions, adminPw, cookies, logger)
	r := NewRouter(logger)
	h.RegisterRoutes(r)
	return &testEnv{handler: h, router: r, backend: backend, sessions: sessions, adminPw: adminPw, kv: kv}
}

// signIn seeds a stored session and returns the sid to present as a cookie.
func (e *testEnv) signIn(t *testing.T) string {
	t.Helper()
	sid := "test-sid"
	if _, err := e.sessions.Login(context.Background(), sid, "a@b.it", "secret"); err != nil {
		t.Fatalf("seed login failed: %v", err)
	}
	return sid
}

func (e *testEnv) do(method, target, sid string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: sidCookie, Value: sid})
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestIndex_RendersRooms(t *testing.T) {
	env := newTestEnv(&fakeBackend{rooms: []api.Room{
		{ID: 1, Title: "Stanza in centro", Price: 450},
	}})

	rec := env.do(http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Stanza in centro") {
		t.Error("expected room title in page")
	}
	if env.backend.listRoomsCalls != 1 {
		t.Errorf("expected one list call, got %d", env.backend.listRoomsCalls)
	}
}

func TestIndex_FilterIsClientSide(t *testing.T) {
	env := newTestEnv(&fakeBackend{rooms: []api.Room{
		{ID: 1, Title: "Economica", Price: 200},
		{ID: 2, Title: "Media", Price: 400},
		{ID: 3, Title: "Cara", Price: 600},
	}})

	rec := env.do(http.MethodGet, "/?min_price=300&max_price=500", "", nil)
	body := rec.Body.String()
	if strings.Contains(body, "Economica") || strings.Contains(body, "Cara") {
		t.Error("expected out-of-range rooms filtered out")
	}
	if !strings.Contains(body, "Media") {
		t.Error("expected in-range room kept")
	}
}

func TestProtectedRoute_RedirectsWithoutBackendCall(t *testing.T) {
	env := newTestEnv(&fakeBackend{})

	rec := env.do(http.MethodGet, "/my-rooms", "", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %s", loc)
	}
	if env.backend.myRoomsCalls != 0 {
		t.Errorf("guard must not touch the backend, got %d calls", env.backend.myRoomsCalls)
	}
}

func TestMyRooms_ExpiredTokenClearsSession(t *testing.T) {
	env := newTestEnv(&fakeBackend{
		myRoomsErr: &api.Error{Status: http.StatusUnauthorized, Detail: "Unauthorized"},
	})
	sid := env.signIn(t)

	rec := env.do(http.MethodGet, "/my-rooms", sid, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if _, err := env.sessions.Current(context.Background(), sid); err == nil {
		t.Error("expected session cleared after backend 401")
	}
}

func TestApply_InvalidFormNeverSubmits(t *testing.T) {
	env := newTestEnv(&fakeBackend{rooms: []api.Room{{ID: 1, Title: "Stanza"}}})

	form := url.Values{
		"full_name": {""},
		"email":     {"non-valida"},
		"age":       {"12"},
	}
	rec := env.do(http.MethodPost, "/rooms/1/apply", "", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 re-render, got %d", rec.Code)
	}
	if env.backend.submitCalls != 0 {
		t.Errorf("invalid form must never reach the backend, got %d submits", env.backend.submitCalls)
	}
	if !strings.Contains(rec.Body.String(), "Inserisci un indirizzo email valido.") {
		t.Error("expected field error in page")
	}
}

func TestApply_ValidFormSubmitsOnce(t *testing.T) {
	env := newTestEnv(&fakeBackend{rooms: []api.Room{{ID: 1, Title: "Stanza"}}})

	form := url.Values{
		"full_name": {"Maria Rossi"},
		"email":     {"maria@esempio.com"},
		"course":    {"Informatica"},
		"sex":       {"F"},
		"age":       {"22"},
	}
	rec := env.do(http.MethodPost, "/rooms/1/apply", "", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.backend.submitCalls != 1 {
		t.Errorf("expected exactly one submit, got %d", env.backend.submitCalls)
	}
	if !strings.Contains(rec.Body.String(), "Candidatura inviata!") {
		t.Error("expected success confirmation in page")
	}
}

func TestApply_BackendFailureKeepsFormEditable(t *testing.T) {
	env := newTestEnv(&fakeBackend{
		rooms:     []api.Room{{ID: 1, Title: "Stanza"}},
		submitErr: &api.Error{Status: http.StatusConflict, Detail: "Hai già inviato una candidatura"},
	})

	form := url.Values{
		"full_name": {"Maria Rossi"},
		"email":     {"maria@esempio.com"},
		"course":    {"Informatica"},
		"sex":       {"F"},
		"age":       {"22"},
	}
	rec := env.do(http.MethodPost, "/rooms/1/apply", "", form)
	body := rec.Body.String()
	if !strings.Contains(body, "Hai già inviato una candidatura") {
		t.Error("expected backend detail surfaced")
	}
	// The form stays filled for retry.
	if !strings.Contains(body, "Maria Rossi") {
		t.Error("expected form values preserved")
	}
}

func TestRoomDetail_OwnerSeesNoApplicationForm(t *testing.T) {
	env := newTestEnv(&fakeBackend{rooms: []api.Room{{ID: 1, Title: "Stanza", OwnerID: 9}}})
	sid := env.signIn(t)

	rec := env.do(http.MethodGet, "/rooms/1", sid, nil)
	body := rec.Body.String()
	if !strings.Contains(body, "Sei il proprietario") {
		t.Error("expected owner panel")
	}
	if strings.Contains(body, "Candidati per questa stanza") {
		t.Error("owner must not see the application form")
	}
}

func TestRoomDetail_ClosedRoomBlocksApplications(t *testing.T) {
	env := newTestEnv(&fakeBackend{rooms: []api.Room{{ID: 1, Title: "Stanza", IsClosed: true, OwnerID: 5}}})

	rec := env.do(http.MethodGet, "/rooms/1", "", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "Questo annuncio non accetta più candidature.") {
		t.Error("expected closed notice")
	}
	if strings.Contains(body, "Candidati per questa stanza") {
		t.Error("closed room must not show the application form")
	}
}

func TestLogout_AlwaysClears(t *testing.T) {
	env := newTestEnv(&fakeBackend{})
	sid := env.signIn(t)

	rec := env.do(http.MethodPost, "/logout", sid, url.Values{})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect home, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if _, err := env.sessions.Current(context.Background(), sid); err == nil {
		t.Error("expected session cleared")
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(&fakeBackend{})
	rec := env.do(http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestCookieBanner_HiddenAfterAccept(t *testing.T) {
	env := newTestEnv(&fakeBackend{})
	sid := "visitor-1"

	rec := env.do(http.MethodGet, "/", sid, nil)
	if !strings.Contains(rec.Body.String(), "Presa visione") {
		t.Fatal("expected cookie banner for new visitor")
	}

	rec = env.do(http.MethodPost, "/cookies/accept", sid, url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	rec = env.do(http.MethodGet, "/", sid, nil)
	if strings.Contains(rec.Body.String(), "Presa visione") {
		t.Error("expected banner gone after acknowledgment")
	}
}
