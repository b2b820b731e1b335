package lockops

import (
	"context"
	"testing"

	"github.com/linkvote-app/linkvote/internal/infra/chaster"
)

type fakeClient struct {
	chaster.Client
	actions []chaster.Action
	logs    []chaster.LogEntry
}

func (f *fakeClient) DoAction(ctx context.Context, sessionID string, action chaster.Action) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeClient) LogCustomAction(ctx context.Context, sessionID string, entry chaster.LogEntry) error {
	f.logs = append(f.logs, entry)
	return nil
}

func TestSetTime(t *testing.T) {
	tests := []struct {
		seconds    int
		wantName   string
		wantParams any
	}{
		{120, chaster.ActionAddTime, 120},
		{-120, chaster.ActionRemoveTime, 120},
		{0, chaster.ActionAddTime, 0},
	}
	for _, tt := range tests {
		fake := &fakeClient{}
		g := NewGateway(fake)

		if err := g.SetTime(context.Background(), "sess", tt.seconds); err != nil {
			t.Fatalf("SetTime(%d) error: %v", tt.seconds, err)
		}
		if len(fake.actions) != 1 {
			t.Fatalf("SetTime(%d) issued %d actions, want 1", tt.seconds, len(fake.actions))
		}
		got := fake.actions[0]
		if got.Name != tt.wantName {
			t.Errorf("SetTime(%d) action = %q, want %q", tt.seconds, got.Name, tt.wantName)
		}
		if got.Params != tt.wantParams {
			t.Errorf("SetTime(%d) params = %v, want %v", tt.seconds, got.Params, tt.wantParams)
		}
	}
}

func TestFreezeFamily(t *testing.T) {
	fake := &fakeClient{}
	g := NewGateway(fake)
	ctx := context.Background()

	_ = g.Freeze(ctx, "s")
	_ = g.Unfreeze(ctx, "s")
	_ = g.ToggleFreeze(ctx, "s")

	want := []string{chaster.ActionFreeze, chaster.ActionUnfreeze, chaster.ActionToggleFreeze}
	if len(fake.actions) != len(want) {
		t.Fatalf("actions = %d, want %d", len(fake.actions), len(want))
	}
	for i, name := range want {
		if fake.actions[i].Name != name {
			t.Errorf("action[%d] = %q, want %q", i, fake.actions[i].Name, name)
		}
	}
}

func TestPillory(t *testing.T) {
	fake := &fakeClient{}
	g := NewGateway(fake)

	if err := g.Pillory(context.Background(), "s", 600, "missed quota"); err != nil {
		t.Fatalf("Pillory() error: %v", err)
	}
	params, ok := fake.actions[0].Params.(chaster.PilloryParams)
	if !ok {
		t.Fatalf("params = %T", fake.actions[0].Params)
	}
	if params.Duration != 600 || params.Reason != "missed quota" {
		t.Errorf("params = %+v", params)
	}
}

func TestLogEntry(t *testing.T) {
	fake := &fakeClient{}
	g := NewGateway(fake)

	if err := g.LogEntry(context.Background(), "s", "Jackpot!", "big win"); err != nil {
		t.Fatalf("LogEntry() error: %v", err)
	}
	if len(fake.logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(fake.logs))
	}
	if fake.logs[0].Role != chaster.RoleExtension {
		t.Errorf("role = %q, want %q", fake.logs[0].Role, chaster.RoleExtension)
	}
}
