// Package backend is the HTTP client for the external UbicAir REST API.
// Every piece of business logic (auth, favorites storage, statistics
// aggregation, telemetry simulation) lives behind this client; the rest of
// the process only fetches, derives and renders.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fernandomartin18/UbicAir/models"
)

const (
	defaultBaseURL = "http://localhost:3000"

	requestTimeout = 15 * time.Second

	// Connection pool settings
	maxIdleConns    = 10
	maxConnsPerHost = 5
	idleConnTimeout = 90 * time.Second
)

// TokenSource supplies the bearer token for authenticated requests. An
// empty token means no active session.
type TokenSource interface {
	Token() string
	UserID() string
}

// APIError is a non-2xx response, or a 2xx response whose envelope reports
// success=false. Message carries the server-provided text verbatim so the
// UI can show it unchanged.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed (status %d)", e.Status)
}

// envelope mirrors the backend's response wrapper. Success payloads sit
// under data, except telemetry summary stats which arrive under stats.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Stats   json.RawMessage `json:"stats"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (e *envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets the backend base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource attaches the session store used for bearer auth.
func WithTokenSource(ts TokenSource) ClientOption {
	return func(c *Client) { c.tokens = ts }
}

// Client talks to the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a backend API client with connection pooling.
func NewClient(opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:    maxIdleConns,
		MaxConnsPerHost: maxConnsPerHost,
		IdleConnTimeout: idleConnTimeout,
	}

	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do issues a request and unwraps the response envelope. Both the HTTP
// status and the success flag must check out before the payload is trusted.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, authed bool) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if authed && c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	// A decode failure on an error status is fine, the status alone is
	// enough to reject the response.
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: env.errorMessage()}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("parsing response: %w", decodeErr)
	}
	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.errorMessage()}
	}

	return &env, nil
}

// userPath builds a path under /api/users/{id} for the active session.
func (c *Client) userPath(suffix string) (string, error) {
	if c.tokens == nil || c.tokens.UserID() == "" {
		return "", fmt.Errorf("no active session")
	}
	return "/api/users/" + url.PathEscape(c.tokens.UserID()) + suffix, nil
}

// Register creates a new account and returns the issued token and user id.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.AuthResult, error) {
	body := map[string]string{"nombre": name, "email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/users/register", body, false)
	if err != nil {
		return nil, err
	}
	return decodeAuth(env.Data)
}

// Login authenticates and returns the issued token and user id.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/users/login", body, false)
	if err != nil {
		return nil, err
	}
	return decodeAuth(env.Data)
}

func decodeAuth(data json.RawMessage) (*models.AuthResult, error) {
	var auth models.AuthResult
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, fmt.Errorf("parsing auth payload: %w", err)
	}
	if auth.Token == "" || auth.UserID == "" {
		return nil, fmt.Errorf("auth payload missing token or user id")
	}
	return &auth, nil
}

// GetUser fetches the active session's profile.
func (c *Client) GetUser(ctx context.Context) (*models.User, error) {
	path, err := c.userPath("")
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("parsing user payload: %w", err)
	}
	return &user, nil
}

// UpdateUser sends only the changed profile fields.
func (c *Client) UpdateUser(ctx context.Context, update models.UserUpdate) error {
	path, err := c.userPath("")
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPut, path, update, true)
	return err
}

// favoritesBody wraps a schedule record the way the backend expects it.
type favoritesBody struct {
	Flight models.ScheduleFlight `json:"flight"`
}

// GetFavorites fetches the session's favorite schedule records.
func (c *Client) GetFavorites(ctx context.Context) ([]models.ScheduleFlight, error) {
	path, err := c.userPath("/favorites")
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Favorites []models.ScheduleFlight `json:"favorites"`
	}
	if err := json.Unmarshal(env.Data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing favorites payload: %w", err)
	}
	return wrapped.Favorites, nil
}

// AddFavorite stores a schedule snapshot on the backend.
func (c *Client) AddFavorite(ctx context.Context, flight models.ScheduleFlight) error {
	path, err := c.userPath("/favorites")
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, path, favoritesBody{Flight: flight}, true)
	return err
}

// RemoveFavorite deletes a favorite; the body carries the full snapshot,
// not just a key.
func (c *Client) RemoveFavorite(ctx context.Context, flight models.ScheduleFlight) error {
	path, err := c.userPath("/favorites")
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, path, favoritesBody{Flight: flight}, true)
	return err
}

// SearchFlights queries schedule records by airport substring match on
// origin or destination.
func (c *Client) SearchFlights(ctx context.Context, term string) ([]models.ScheduleFlight, error) {
	path := "/api/vuelos?search=" + url.QueryEscape(term)
	env, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	// The backend wraps results under data.vuelos, but older deployments
	// return the array directly under data.
	var wrapped struct {
		Vuelos []models.ScheduleFlight `json:"vuelos"`
	}
	if err := json.Unmarshal(env.Data, &wrapped); err == nil && wrapped.Vuelos != nil {
		return wrapped.Vuelos, nil
	}

	var flights []models.ScheduleFlight
	if err := json.Unmarshal(env.Data, &flights); err != nil {
		return nil, fmt.Errorf("parsing search payload: %w", err)
	}
	return flights, nil
}

// GetStatistics fetches the pre-aggregated overview stats.
func (c *Client) GetStatistics(ctx context.Context) (*models.GeneralStats, json.RawMessage, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/vuelos/estadisticas", nil, true)
	if err != nil {
		return nil, nil, err
	}
	var stats models.GeneralStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return nil, nil, fmt.Errorf("parsing statistics payload: %w", err)
	}
	return &stats, env.Data, nil
}

// GetDelayAnalysis fetches the pre-aggregated delay series.
func (c *Client) GetDelayAnalysis(ctx context.Context) (*models.DelayAnalysis, json.RawMessage, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/vuelos/analisis-retrasos", nil, true)
	if err != nil {
		return nil, nil, err
	}
	var analysis models.DelayAnalysis
	if err := json.Unmarshal(env.Data, &analysis); err != nil {
		return nil, nil, fmt.Errorf("parsing delay analysis payload: %w", err)
	}
	return &analysis, env.Data, nil
}

// GetAirlineComparison fetches the pre-aggregated per-airline stats.
func (c *Client) GetAirlineComparison(ctx context.Context) ([]models.AirlineStats, json.RawMessage, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/vuelos/comparacion-aerolineas", nil, true)
	if err != nil {
		return nil, nil, err
	}
	var airlines []models.AirlineStats
	if err := json.Unmarshal(env.Data, &airlines); err != nil {
		return nil, nil, fmt.Errorf("parsing airline comparison payload: %w", err)
	}
	return airlines, env.Data, nil
}

// ActiveFlights fetches the current set of simulated in-flight aircraft.
func (c *Client) ActiveFlights(ctx context.Context) ([]models.TelemetryFlight, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/telemetry/active", nil, false)
	if err != nil {
		return nil, err
	}
	var flights []models.TelemetryFlight
	if err := json.Unmarshal(env.Data, &flights); err != nil {
		return nil, fmt.Errorf("parsing telemetry payload: %w", err)
	}
	return flights, nil
}

// TelemetryStats fetches the simulator's summary counters. Note the
// envelope keeps these under stats rather than data.
func (c *Client) TelemetryStats(ctx context.Context) (*models.TelemetryStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/telemetry/stats", nil, false)
	if err != nil {
		return nil, err
	}
	var stats models.TelemetryStats
	if err := json.Unmarshal(env.Stats, &stats); err != nil {
		return nil, fmt.Errorf("parsing telemetry stats payload: %w", err)
	}
	return &stats, nil
}
