package api

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Header names the backend authenticates with.
const (
	HeaderAuthToken     = "X-Auth-Token"
	HeaderAdminPassword = "X-Admin-Password"
)

// Client talks to the rental backend. Every call is one-shot: no retries,
// no client-side timeout, no caching. Failures are normalized into *Error.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// check folds a transport error or a non-2xx response into one error value.
func (c *Client) check(resp *resty.Response, err error, op string) error {
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		apiErr := newError(resp.StatusCode(), resp.Body())
		c.logger.Warn("backend returned error",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode()),
			zap.String("detail", apiErr.Detail),
		)
		return apiErr
	}
	return nil
}

// Register exchanges a new account for a session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": name, "email": email, "password": password}).
		SetResult(&out).
		Post("/auth/register")
	if err := c.check(resp, err, "register"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/auth/login")
	if err := c.check(resp, err, "login"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the token server-side. Callers treat failures as
// non-fatal; local state is cleared regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAuthToken, token).
		Post("/auth/logout")
	return c.check(resp, err, "logout")
}

// ListRooms fetches listings, optionally bounded by a price range.
// Nil bounds mean no server-side constraint.
func (c *Client) ListRooms(ctx context.Context, minPrice, maxPrice *float64) ([]Room, error) {
	req := c.http.R().SetContext(ctx)
	if minPrice != nil {
		req.SetQueryParam("min_price", strconv.FormatFloat(*minPrice, 'f', -1, 64))
	}
	if maxPrice != nil {
		req.SetQueryParam("max_price", strconv.FormatFloat(*maxPrice, 'f', -1, 64))
	}
	var out []Room
	resp, err := req.SetResult(&out).Get("/rooms")
	if err := c.check(resp, err, "list rooms"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRoom(ctx context.Context, id int64) (*Room, error) {
	var out Room
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/rooms/%d", id))
	if err := c.check(resp, err, "get room"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRoom(ctx context.Context, token string, data RoomCreate) (*Room, error) {
	var out Room
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAuthToken, token).
		SetBody(data).
		SetResult(&out).
		Post("/rooms")
	if err := c.check(resp, err, "create room"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRoom(ctx context.Context, token string, id int64, data RoomUpdate) (*Room, error) {
	var out Room
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAuthToken, token).
		SetBody(data).
		SetResult(&out).
		Put(fmt.Sprintf("/rooms/%d", id))
	if err := c.check(resp, err, "update room"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRoom removes a listing. The backend cascades to its applications.
func (c *Client) DeleteRoom(ctx context.Context, token string, id int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAuthToken, token).
		Delete(fmt.Sprintf("/rooms/%d", id))
	return c.check(resp, err, "delete room")
}

// CloseRoom flips the listing to closed. Idempotent on the backend.
func (c *Client) CloseRoom(ctx context.Context, token string, id int64) (*Room, error) {
	var out Room
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAuthToken, token).
		SetResult(&out).
		Post(fmt.Sprintf("/rooms/%d/close", id))
	if err := c.check(resp, err, "close room"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMyRooms(ctx context.Context, token string) ([]Room, error) {
	var out []Room
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAuthToken, token).
		SetResult(&out).
		Get("/my-rooms")
	if err := c.check(resp, err, "list my rooms"); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadImage posts one image as multipart form data.
func (c *Client) UploadImage(ctx context.Context, token string, roomID int64, filename string, file io.Reader) (*RoomImage, error) {
	var out RoomImage
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAuthToken, token).
		SetFileReader("file", filename, file).
		SetResult(&out).
		Post(fmt.Sprintf("/rooms/%d/images", roomID))
	if err := c.check(resp, err, "upload image"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteImage(ctx context.Context, token string, roomID, imageID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAuthToken, token).
		Delete(fmt.Sprintf("/rooms/%d/images/%d", roomID, imageID))
	return c.check(resp, err, "delete image")
}

// SubmitApplication files a candidacy against a listing. Anonymous.
func (c *Client) SubmitApplication(ctx context.Context, roomID int64, payload ApplicationPayload) (*Application, error) {
	var out Application
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post(fmt.Sprintf("/rooms/%d/applications", roomID))
	if err := c.check(resp, err, "submit application"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRoomApplications returns the candidacies for a listing the token owns.
func (c *Client) ListRoomApplications(ctx context.Context, token string, roomID int64) ([]Application, error) {
	var out []Application
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAuthToken, token).
		SetResult(&out).
		Get(fmt.Sprintf("/rooms/%d/applications", roomID))
	if err := c.check(resp, err, "list room applications"); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitGeneralApplication files a candidacy for the single configured
// listing (standalone applications service).
func (c *Client) SubmitGeneralApplication(ctx context.Context, payload ApplicationPayload) (*Application, error) {
	var out Application
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/applications")
	if err := c.check(resp, err, "submit application"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAllApplications returns every stored candidacy. Gated by the shared
// admin password; a wrong password comes back as ErrUnauthorized.
func (c *Client) ListAllApplications(ctx context.Context, adminPassword string) ([]Application, error) {
	var out []Application
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderAdminPassword, adminPassword).
		SetResult(&out).
		Get("/applications")
	if err := c.check(resp, err, "list applications"); err != nil {
		return nil, err
	}
	return out, nil
}
