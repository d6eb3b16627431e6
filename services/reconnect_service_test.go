package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

// expiredMatch creates a match for ava+ben and steps the clock past its
// window.
func expiredMatch(t *testing.T, e *engine) string {
	t.Helper()
	e.seedVenue(t, "ava", "ben")

	result, err := e.matches.OnMutualDetected(context.Background(), "ava", "ben", testVenue, "The Blue Note")
	if err != nil {
		t.Fatalf("OnMutualDetected: %v", err)
	}
	e.clock.Advance(testWindow + time.Minute)
	return result.Match.MatchID
}

func TestRequestReconnectOneSideDoesNotRevive(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	matchID := expiredMatch(t, e)
	ctx := context.Background()

	revived, err := e.reconnect.RequestReconnect(ctx, matchID, "ava")
	if err != nil {
		t.Fatalf("RequestReconnect: %v", err)
	}
	if revived {
		t.Errorf("single-sided request revived the match")
	}

	match, err := e.matches.GetMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if !IsExpired(*match, e.clock.Now()) {
		t.Errorf("match revived without the second consent")
	}
	if _, ok := match.ReconnectBy["ava"]; !ok {
		t.Errorf("requesting side's consent not recorded")
	}
}

func TestRequestReconnectRepeatIsIdempotent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	matchID := expiredMatch(t, e)
	ctx := context.Background()

	if _, err := e.reconnect.RequestReconnect(ctx, matchID, "ava"); err != nil {
		t.Fatalf("RequestReconnect: %v", err)
	}

	revived, err := e.reconnect.RequestReconnect(ctx, matchID, "ava")
	if err != nil {
		t.Fatalf("repeat RequestReconnect: %v", err)
	}
	if revived {
		t.Errorf("repeat request from the same side revived the match")
	}
}

func TestRequestReconnectBothSidesRevive(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	matchID := expiredMatch(t, e)
	ctx := context.Background()

	if _, err := e.reconnect.RequestReconnect(ctx, matchID, "ava"); err != nil {
		t.Fatalf("RequestReconnect(ava): %v", err)
	}
	revived, err := e.reconnect.RequestReconnect(ctx, matchID, "ben")
	if err != nil {
		t.Fatalf("RequestReconnect(ben): %v", err)
	}
	if !revived {
		t.Errorf("second consent did not revive the match")
	}

	match, err := e.matches.GetMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if IsExpired(*match, e.clock.Now()) {
		t.Errorf("revived match still expired")
	}
	// Revival consumes the consent flags and stamps the revival time.
	if len(match.ReconnectBy) != 0 {
		t.Errorf("consent flags survived revival: %v", match.ReconnectBy)
	}
	if match.ReconnectedAt == nil {
		t.Errorf("ReconnectedAt not set on revival")
	}
}

func TestRequestReconnectFreshCycleAfterRevival(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	matchID := expiredMatch(t, e)
	ctx := context.Background()

	if _, err := e.reconnect.RequestReconnect(ctx, matchID, "ava"); err != nil {
		t.Fatalf("RequestReconnect(ava): %v", err)
	}
	if _, err := e.reconnect.RequestReconnect(ctx, matchID, "ben"); err != nil {
		t.Fatalf("RequestReconnect(ben): %v", err)
	}

	// Let the revived window lapse, then start over. The earlier consents
	// must not carry forward.
	e.clock.Advance(testWindow + time.Minute)

	revived, err := e.reconnect.RequestReconnect(ctx, matchID, "ava")
	if err != nil {
		t.Fatalf("RequestReconnect after second expiry: %v", err)
	}
	if revived {
		t.Errorf("stale consent from the first cycle revived the match")
	}
}

func TestRequestReconnectUnauthorized(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	matchID := expiredMatch(t, e)

	_, err := e.reconnect.RequestReconnect(context.Background(), matchID, "mallory")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("outsider request: got %v, want ErrUnauthorized", err)
	}
}

func TestRequestReconnectUnknownMatch(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	_, err := e.reconnect.RequestReconnect(context.Background(), "no-such-match", "ava")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown match: got %v, want ErrNotFound", err)
	}
}
