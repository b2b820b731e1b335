// Package chaster is the client for the remote lock platform's partner
// extensions API. All session state lives there; this process only fetches
// and patches it per operation.
package chaster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linkvote-app/linkvote/internal/domain"
)

// DefaultBaseURL is the production partner extensions API root.
const DefaultBaseURL = "https://api.chaster.app/api/extensions"

// Lock action names accepted by the platform's action endpoint.
const (
	ActionFreeze       = "freeze"
	ActionUnfreeze     = "unfreeze"
	ActionToggleFreeze = "toggle_freeze"
	ActionPillory      = "pillory"
	ActionAddTime      = "add_time"
	ActionRemoveTime   = "remove_time"
)

// ErrMissingCredentials is returned when an API key, client id or session
// token required for a call is absent. Configuration errors are not retried.
var ErrMissingCredentials = errors.New("chaster: missing credentials")

// Client is the narrow interface the rest of the backend depends on.
// Implementations are injected so tests can substitute fakes.
type Client interface {
	SessionAuth(ctx context.Context, token string) (SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	PatchSession(ctx context.Context, sessionID string, patch domain.SessionPatch) error
	SearchSessions(ctx context.Context, criteria SearchCriteria) ([]domain.Session, error)
	DoAction(ctx context.Context, sessionID string, action Action) error
	LogCustomAction(ctx context.Context, sessionID string, entry LogEntry) error
	GetConfiguration(ctx context.Context, configToken string) (map[string]any, error)
	UpdateConfiguration(ctx context.Context, configToken string, config map[string]any) error
}

// SessionInfo resolves a per-session token to platform identifiers.
type SessionInfo struct {
	SessionID string
	LockID    string
}

// SearchCriteria filters the platform-wide session search.
type SearchCriteria struct {
	Status        string `json:"status,omitempty"`
	ExtensionSlug string `json:"extensionSlug,omitempty"`
}

// Action is a lock action command. Params is action-specific: a duration in
// seconds for add_time/remove_time, a PilloryParams for pillory, absent for
// the freeze family.
type Action struct {
	Name   string `json:"name"`
	Params any    `json:"params,omitempty"`
}

// PilloryParams parameterizes the pillory action.
type PilloryParams struct {
	Duration int    `json:"duration"`
	Reason   string `json:"reason"`
}

// LogEntry is a custom action-log entry attributed to the extension.
type LogEntry struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Role        string  `json:"role"`
	Icon        string  `json:"icon,omitempty"`
	Color       *string `json:"color"`
}

// RoleExtension attributes a log entry to the extension itself.
const RoleExtension = "extension"

// APIError is a non-2xx response from the platform, with the response body
// retained for logging.
type APIError struct {
	Status int
	Op     string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chaster: %s returned %d: %s", e.Op, e.Status, e.Body)
}

// HTTPClient is the production Client over the platform's REST API.
type HTTPClient struct {
	baseURL  string
	apiKey   string
	clientID string
	http     *http.Client
}

// Options configures an HTTPClient.
type Options struct {
	BaseURL  string // defaults to DefaultBaseURL
	APIKey   string // bearer token for all calls
	ClientID string // X-CHASTER-CLIENT-ID for session auth resolution
}

// New creates an HTTPClient. Credential presence is checked per call, at the
// point of use, so a partially configured process can still serve endpoints
// that do not need the missing value.
func New(opts Options) *HTTPClient {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL:  base,
		apiKey:   opts.APIKey,
		clientID: opts.ClientID,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// SessionAuth resolves a per-session token to a sessionId and lockId.
func (c *HTTPClient) SessionAuth(ctx context.Context, token string) (SessionInfo, error) {
	if token == "" || c.clientID == "" || c.apiKey == "" {
		return SessionInfo{}, fmt.Errorf("session auth: %w", ErrMissingCredentials)
	}

	body := map[string]string{"token": token}
	var rep struct {
		Session struct {
			SessionID string `json:"sessionId"`
			Lock      struct {
				ID string `json:"_id"`
			} `json:"lock"`
		} `json:"session"`
	}
	headers := map[string]string{"X-CHASTER-CLIENT-ID": c.clientID}
	if err := c.call(ctx, http.MethodPost, "/auth/sessions", headers, body, &rep); err != nil {
		return SessionInfo{}, err
	}
	if rep.Session.SessionID == "" {
		return SessionInfo{}, fmt.Errorf("session auth: no session id in response")
	}
	return SessionInfo{SessionID: rep.Session.SessionID, LockID: rep.Session.Lock.ID}, nil
}

// GetSession fetches a session by id.
func (c *HTTPClient) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var rep struct {
		Session domain.Session `json:"session"`
	}
	path := "/sessions/" + sessionID
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &rep); err != nil {
		return nil, err
	}
	return &rep.Session, nil
}

// PatchSession persists updated session sections in a single call.
func (c *HTTPClient) PatchSession(ctx context.Context, sessionID string, patch domain.SessionPatch) error {
	return c.call(ctx, http.MethodPatch, "/sessions/"+sessionID, nil, patch, nil)
}

// SearchSessions lists sessions matching the criteria across the extension.
func (c *HTTPClient) SearchSessions(ctx context.Context, criteria SearchCriteria) ([]domain.Session, error) {
	var rep struct {
		Results []domain.Session `json:"results"`
	}
	if err := c.call(ctx, http.MethodPost, "/sessions/search", nil, criteria, &rep); err != nil {
		return nil, err
	}
	return rep.Results, nil
}

// DoAction submits a lock action. Fire-and-confirm: the platform's response
// is the only acknowledgment, there is no local retry.
func (c *HTTPClient) DoAction(ctx context.Context, sessionID string, action Action) error {
	body := map[string]any{"action": action}
	return c.call(ctx, http.MethodPost, "/sessions/"+sessionID+"/action", nil, body, nil)
}

// LogCustomAction records a custom extension log entry on the session.
func (c *HTTPClient) LogCustomAction(ctx context.Context, sessionID string, entry LogEntry) error {
	if entry.Role == "" {
		entry.Role = RoleExtension
	}
	return c.call(ctx, http.MethodPost, "/sessions/"+sessionID+"/logs/custom", nil, entry, nil)
}

// GetConfiguration fetches the partner configuration for a config token.
func (c *HTTPClient) GetConfiguration(ctx context.Context, configToken string) (map[string]any, error) {
	var rep struct {
		Config map[string]any `json:"config"`
	}
	if err := c.call(ctx, http.MethodGet, "/configurations/"+configToken, nil, nil, &rep); err != nil {
		return nil, err
	}
	return rep.Config, nil
}

// UpdateConfiguration replaces the partner configuration for a config token.
func (c *HTTPClient) UpdateConfiguration(ctx context.Context, configToken string, config map[string]any) error {
	body := map[string]any{"config": config}
	return c.call(ctx, http.MethodPut, "/configurations/"+configToken, nil, body, nil)
}

// call performs one authenticated request and decodes the response into out
// when out is non-nil. Non-2xx responses become *APIError with the body
// retained for the caller's logs.
func (c *HTTPClient) call(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%s %s: %w", method, path, ErrMissingCredentials)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Op: method + " " + path, Body: string(detail)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
