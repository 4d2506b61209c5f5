package heartbeat

import (
	"testing"
	"time"
)

func TestStartInvalidSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
	}{
		{name: "Empty", schedule: ""},
		{name: "Garbage", schedule: "not a schedule"},
		{name: "Too few fields", schedule: "* * *"},
		{name: "Bad descriptor", schedule: "@sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hb, err := Start(tt.schedule)
			if err == nil {
				_ = hb.Stop(time.Second)
				t.Fatalf("Expected error for schedule %q", tt.schedule)
			}
		})
	}
}

func TestHeartbeatBeats(t *testing.T) {
	hb, err := Start("@every 1s")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	next := hb.Next()
	if next.IsZero() || next.Before(time.Now().Add(-time.Second)) {
		t.Errorf("Unexpected next run time: %v", next)
	}

	deadline := time.Now().Add(5 * time.Second)
	for hb.Beats() == 0 && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}
	if hb.Beats() == 0 {
		t.Error("Expected at least one heartbeat within 5s")
	}

	if err := hb.Stop(2 * time.Second); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	// No more beats after stop
	stopped := hb.Beats()
	time.Sleep(1500 * time.Millisecond)
	if hb.Beats() != stopped {
		t.Errorf("Expected no beats after Stop, went from %d to %d", stopped, hb.Beats())
	}
}

func TestSecondsCronExpression(t *testing.T) {
	hb, err := Start("*/30 * * * * *")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer hb.Stop(time.Second)

	if until := time.Until(hb.Next()); until > 30*time.Second {
		t.Errorf("Expected next beat within 30s, got %v", until)
	}
}
