package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func statusByName(statuses []Status, name string) (Status, bool) {
	for _, s := range statuses {
		if s.Name == name {
			return s, true
		}
	}
	return Status{}, false
}

func TestChecker_AllHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized) // any HTTP response counts as reachable
	}))
	defer srv.Close()

	c := NewChecker(nil, "some-key", srv.URL)
	c.runAll(context.Background())

	if !c.IsHealthy() {
		t.Errorf("IsHealthy() = false, statuses = %+v", c.Statuses())
	}
	if s, ok := statusByName(c.Statuses(), "credentials"); !ok || !s.Healthy {
		t.Errorf("credentials check = %+v", s)
	}
	if s, ok := statusByName(c.Statuses(), "platform_reachable"); !ok || !s.Healthy {
		t.Errorf("reachability check = %+v", s)
	}
}

func TestChecker_MissingAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := NewChecker(nil, "", srv.URL)
	c.runAll(context.Background())

	if c.IsHealthy() {
		t.Error("IsHealthy() = true with no API key")
	}
	s, _ := statusByName(c.Statuses(), "credentials")
	if s.Healthy || s.Error == "" {
		t.Errorf("credentials check = %+v", s)
	}
}

func TestChecker_UnreachablePlatform(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed port: transport error

	c := NewChecker(nil, "key", srv.URL)
	c.runAll(context.Background())

	s, _ := statusByName(c.Statuses(), "platform_reachable")
	if s.Healthy {
		t.Error("reachability check passed against closed server")
	}
}

func TestChecker_NilJournalSkipsCheck(t *testing.T) {
	c := NewChecker(nil, "key", "http://localhost:0")
	if _, ok := statusByName(c.Statuses(), "journal"); ok {
		t.Error("journal check present without a journal")
	}
	if len(c.checks) != 2 {
		t.Errorf("checks = %d, want 2", len(c.checks))
	}
}

func TestChecker_NoRunsYetIsHealthy(t *testing.T) {
	c := NewChecker(nil, "key", "http://localhost:0")
	if !c.IsHealthy() {
		t.Error("empty status list should read as healthy")
	}
	if got := c.Statuses(); len(got) != 0 {
		t.Errorf("Statuses() = %+v, want empty", got)
	}
}
