package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mgiraud/autotrader/internal/client/bus"
)

// httpDoer abstracts *http.Client so tests can stub the transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTClient talks JSON over HTTP to the AutoTrader backend.
type RESTClient struct {
	baseURL string
	http    httpDoer
	bus     *bus.Bus

	mu    sync.RWMutex
	token string
}

// NewRESTClient builds a client for the API rooted at baseURL (e.g.
// "http://localhost:5000/api"). Requests time out after timeout. Unauthorized
// responses on token-bearing requests are published on b.
func NewRESTClient(baseURL string, timeout time.Duration, b *bus.Bus) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		bus:     b,
	}
}

// SetToken installs the bearer token for subsequent authenticated requests.
func (c *RESTClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *RESTClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the error payload shape the backend emits.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e *errorBody) text() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// do performs one JSON request/response round trip.
//
// When authed is true the current bearer token is attached, and an
// unauthorized response is additionally published on the bus: a rejected
// token means the whole session is invalid, not just this call.
func (c *RESTClient) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if authed {
		if token := c.currentToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapStatus(resp, authed)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidResponse, err)
		}
	}
	return nil
}

// mapStatus converts a non-2xx response into a sentinel error.
func (c *RESTClient) mapStatus(resp *http.Response, authed bool) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if authed {
			c.bus.Publish(bus.Invalidation{Reason: "token rejected", At: time.Now()})
		}
		if msg := eb.text(); msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	default:
		if msg := eb.text(); msg != "" {
			return fmt.Errorf("%w: %s: %s", ErrServer, resp.Status, msg)
		}
		return fmt.Errorf("%w: %s", ErrServer, resp.Status)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and user record. A 2xx response
// missing either field is reported as ErrInvalidResponse, never as a partial
// success.
func (c *RESTClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", &loginRequest{Username: username, Password: password}, &res, false); err != nil {
		return nil, err
	}
	if res.Token == "" || res.User == nil {
		return nil, fmt.Errorf("%w: login response missing token or user", ErrInvalidResponse)
	}
	return &res, nil
}

// Register creates a new account and returns the created user.
func (c *RESTClient) Register(ctx context.Context, reg *Registration) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/auth/register", reg, &u, false); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout tells the server to discard the session. Callers treat failures as
// non-fatal; local state is cleared regardless.
func (c *RESTClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, true)
}

// CurrentUser fetches the account record for the current token.
func (c *RESTClient) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

// ActivityStatus fetches what the trading bot is currently doing.
func (c *RESTClient) ActivityStatus(ctx context.Context) (*ActivityStatus, error) {
	var st ActivityStatus
	if err := c.do(ctx, http.MethodGet, "/status", nil, &st, true); err != nil {
		return nil, err
	}
	return &st, nil
}

// DashboardMetrics fetches aggregated trading results.
func (c *RESTClient) DashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	var m DashboardMetrics
	if err := c.do(ctx, http.MethodGet, "/dashboard/metrics", nil, &m, true); err != nil {
		return nil, err
	}
	return &m, nil
}

// Transactions fetches one page of the trading journal.
func (c *RESTClient) Transactions(ctx context.Context, q TransactionQuery) (*TransactionPage, error) {
	params := url.Values{}
	if q.SearchTerm != "" {
		params.Set("searchTerm", q.SearchTerm)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	path := "/transactions"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var page TransactionPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page, true); err != nil {
		return nil, err
	}
	return &page, nil
}

// Logs fetches the most recent server-side activity log entries.
func (c *RESTClient) Logs(ctx context.Context, limit int) ([]LogEntry, error) {
	path := "/logs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var entries []LogEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries, true); err != nil {
		return nil, err
	}
	return entries, nil
}

// Close releases transport resources.
func (c *RESTClient) Close() error {
	if hc, ok := c.http.(*http.Client); ok {
		hc.CloseIdleConnections()
	}
	return nil
}

var _ Client = (*RESTClient)(nil)
