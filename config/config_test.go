package config

import (
	"testing"
	"time"
)

// Not parallel: these tests mutate process-wide environment variables.

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "MATCH_WINDOW", "LIKES_PER_VENUE_LIMIT", "MATCH_DECISION"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want %q", cfg.Port, "8080")
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("StoreBackend: got %q, want %q", cfg.StoreBackend, "memory")
	}
	if cfg.MatchWindow != 24*time.Hour {
		t.Errorf("MatchWindow: got %s, want 24h", cfg.MatchWindow)
	}
	if cfg.LikesPerVenueLimit != 3 {
		t.Errorf("LikesPerVenueLimit: got %d, want 3", cfg.LikesPerVenueLimit)
	}
	if cfg.MatchDecision != "mutual" {
		t.Errorf("MatchDecision: got %q, want %q", cfg.MatchDecision, "mutual")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MATCH_WINDOW", "2h30m")
	t.Setenv("LIKES_PER_VENUE_LIMIT", "5")
	t.Setenv("DEMO_MATCH_PROBABILITY", "0.9")

	cfg := Load()
	if cfg.MatchWindow != 2*time.Hour+30*time.Minute {
		t.Errorf("MatchWindow: got %s, want 2h30m", cfg.MatchWindow)
	}
	if cfg.LikesPerVenueLimit != 5 {
		t.Errorf("LikesPerVenueLimit: got %d, want 5", cfg.LikesPerVenueLimit)
	}
	if cfg.DemoMatchProbability != 0.9 {
		t.Errorf("DemoMatchProbability: got %v, want 0.9", cfg.DemoMatchProbability)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MATCH_WINDOW", "soon")
	t.Setenv("LIKES_PER_VENUE_LIMIT", "many")

	cfg := Load()
	if cfg.MatchWindow != 24*time.Hour {
		t.Errorf("MatchWindow fallback: got %s, want 24h", cfg.MatchWindow)
	}
	if cfg.LikesPerVenueLimit != 3 {
		t.Errorf("LikesPerVenueLimit fallback: got %d, want 3", cfg.LikesPerVenueLimit)
	}
}
