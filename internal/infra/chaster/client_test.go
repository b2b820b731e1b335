package chaster

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linkvote-app/linkvote/internal/domain"
)

type recorded struct {
	method string
	path   string
	header http.Header
	body   map[string]any
}

// newTestClient points an HTTPClient at a stub server that records the last
// request and replies with the given status and body.
func newTestClient(t *testing.T, status int, reply string) (*HTTPClient, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.header = r.Header.Clone()
		rec.body = nil
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.WriteHeader(status)
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, APIKey: "test-key", ClientID: "test-client"}), rec
}

func TestSessionAuth(t *testing.T) {
	client, rec := newTestClient(t, 200,
		`{"session":{"sessionId":"s1","lock":{"_id":"l1"}}}`)

	info, err := client.SessionAuth(context.Background(), "tok")
	if err != nil {
		t.Fatalf("SessionAuth() error: %v", err)
	}
	if info.SessionID != "s1" || info.LockID != "l1" {
		t.Errorf("info = %+v", info)
	}
	if rec.method != http.MethodPost || rec.path != "/auth/sessions" {
		t.Errorf("request = %s %s", rec.method, rec.path)
	}
	if got := rec.header.Get("X-CHASTER-CLIENT-ID"); got != "test-client" {
		t.Errorf("client id header = %q", got)
	}
	if rec.body["token"] != "tok" {
		t.Errorf("body = %v", rec.body)
	}
}

func TestSessionAuth_MissingCredentials(t *testing.T) {
	client := New(Options{APIKey: "k"}) // no client id

	_, err := client.SessionAuth(context.Background(), "tok")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("err = %v, want ErrMissingCredentials", err)
	}
}

func TestGetSession(t *testing.T) {
	client, rec := newTestClient(t, 200,
		`{"session":{"sessionId":"s1","config":{"daily_quota":5},"data":{"votes":{"today":2}},"extra":"kept"}}`)

	session, err := client.GetSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/sessions/s1" {
		t.Errorf("request = %s %s", rec.method, rec.path)
	}
	if got := rec.header.Get("Authorization"); got != "Bearer test-key" {
		t.Errorf("auth header = %q", got)
	}
	if session.Config.DailyQuota != 5 || session.Data.Votes.Today != 2 {
		t.Errorf("session = %+v", session)
	}
	if session.Raw["extra"] != "kept" {
		t.Errorf("raw fields not retained: %v", session.Raw)
	}
}

func TestPatchSession(t *testing.T) {
	client, rec := newTestClient(t, 200, `{}`)

	patch := domain.SessionPatch{Data: domain.Data{Votes: domain.VoteCounters{Today: 1}}}
	if err := client.PatchSession(context.Background(), "s1", patch); err != nil {
		t.Fatalf("PatchSession() error: %v", err)
	}
	if rec.method != http.MethodPatch || rec.path != "/sessions/s1" {
		t.Errorf("request = %s %s", rec.method, rec.path)
	}
	if _, ok := rec.body["data"]; !ok {
		t.Errorf("body missing data section: %v", rec.body)
	}
}

func TestSearchSessions(t *testing.T) {
	client, rec := newTestClient(t, 200,
		`{"results":[{"sessionId":"s1"},{"sessionId":"s2"}]}`)

	sessions, err := client.SearchSessions(context.Background(), SearchCriteria{
		Status: "locked", ExtensionSlug: "shared-links-modifier",
	})
	if err != nil {
		t.Fatalf("SearchSessions() error: %v", err)
	}
	if rec.path != "/sessions/search" {
		t.Errorf("path = %s", rec.path)
	}
	if rec.body["status"] != "locked" || rec.body["extensionSlug"] != "shared-links-modifier" {
		t.Errorf("criteria body = %v", rec.body)
	}
	if len(sessions) != 2 || sessions[1].SessionID != "s2" {
		t.Errorf("sessions = %+v", sessions)
	}
}

func TestDoAction(t *testing.T) {
	client, rec := newTestClient(t, 201, `{}`)

	err := client.DoAction(context.Background(), "s1", Action{Name: ActionAddTime, Params: 120})
	if err != nil {
		t.Fatalf("DoAction() error: %v", err)
	}
	if rec.path != "/sessions/s1/action" {
		t.Errorf("path = %s", rec.path)
	}
	action, ok := rec.body["action"].(map[string]any)
	if !ok {
		t.Fatalf("body = %v", rec.body)
	}
	if action["name"] != "add_time" || action["params"] != float64(120) {
		t.Errorf("action = %v", action)
	}
}

func TestLogCustomAction_DefaultsRole(t *testing.T) {
	client, rec := newTestClient(t, 200, `{}`)

	err := client.LogCustomAction(context.Background(), "s1", LogEntry{
		Title: "Lucky vote", Description: "It counts twice!",
	})
	if err != nil {
		t.Fatalf("LogCustomAction() error: %v", err)
	}
	if rec.path != "/sessions/s1/logs/custom" {
		t.Errorf("path = %s", rec.path)
	}
	if rec.body["role"] != RoleExtension {
		t.Errorf("role = %v, want %q", rec.body["role"], RoleExtension)
	}
	if _, ok := rec.body["color"]; !ok {
		t.Errorf("color field must be present even when null: %v", rec.body)
	}
}

func TestConfiguration(t *testing.T) {
	client, rec := newTestClient(t, 200, `{"config":{"daily_quota":3}}`)

	cfg, err := client.GetConfiguration(context.Background(), "cfg-token")
	if err != nil {
		t.Fatalf("GetConfiguration() error: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/configurations/cfg-token" {
		t.Errorf("request = %s %s", rec.method, rec.path)
	}
	if cfg["daily_quota"] != float64(3) {
		t.Errorf("config = %v", cfg)
	}

	if err := client.UpdateConfiguration(context.Background(), "cfg-token", cfg); err != nil {
		t.Fatalf("UpdateConfiguration() error: %v", err)
	}
	if rec.method != http.MethodPut {
		t.Errorf("update method = %s", rec.method)
	}
	if _, ok := rec.body["config"]; !ok {
		t.Errorf("update body = %v", rec.body)
	}
}

func TestCall_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, 404, `{"message":"session not found"}`)

	_, err := client.GetSession(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != 404 {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Body != `{"message":"session not found"}` {
		t.Errorf("body = %q", apiErr.Body)
	}
}

func TestCall_MissingAPIKey(t *testing.T) {
	client := New(Options{})

	_, err := client.GetSession(context.Background(), "s1")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("err = %v, want ErrMissingCredentials", err)
	}
}
