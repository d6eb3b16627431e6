package services

import (
	"context"
	"testing"
	"time"

	"mingle_server/models"
)

// TestEveningLifecycle walks one pair through a full night out: check in,
// like each other, chat inside the match window, let it lapse, and bring it
// back through mutual reconnect.
func TestEveningLifecycle(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.seedVenue(t, "ava", "ben")
	ctx := context.Background()

	// Ava likes Ben. One-sided, one quota spent.
	first := e.like(t, "ava", "ben")
	if first.Outcome != models.LikeRecorded || first.Mutual {
		t.Fatalf("first like: got outcome=%q mutual=%v, want recorded one-sided", first.Outcome, first.Mutual)
	}

	// Twenty minutes later Ben likes back and the match lands.
	e.clock.Advance(20 * time.Minute)
	second := e.like(t, "ben", "ava")
	if second.Outcome != models.LikeMatched || second.Match == nil {
		t.Fatalf("reciprocal like: got outcome=%q match=%v, want a match", second.Outcome, second.Match)
	}
	matchID := second.Match.MatchID

	// The match shows up for both sides with the window counting down.
	for _, userID := range []string{"ava", "ben"} {
		active, err := e.matches.GetActiveMatches(ctx, userID)
		if err != nil {
			t.Fatalf("GetActiveMatches(%s): %v", userID, err)
		}
		if len(active) != 1 || active[0].MatchID != matchID {
			t.Fatalf("active matches for %s: got %v, want match %s", userID, active, matchID)
		}
		if RemainingSeconds(active[0], e.clock.Now()) <= 0 {
			t.Fatalf("fresh match for %s has no time left", userID)
		}
	}

	// They chat on the seeded thread.
	e.clock.Advance(time.Minute)
	if _, err := e.chat.AppendMessage(ctx, matchID, "ava", "meet at the bar?"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	messages, err := e.chat.GetMessages(ctx, matchID, 0)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	// System greeting plus ava's opener.
	if len(messages) != 2 {
		t.Fatalf("thread length: got %d, want 2", len(messages))
	}

	// The night ends and the window lapses.
	e.clock.Advance(testWindow)
	active, err := e.matches.GetActiveMatches(ctx, "ava")
	if err != nil {
		t.Fatalf("GetActiveMatches after expiry: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expired match still listed as active: %v", active)
	}

	// Liking again does not quietly restart the old match. Both earlier
	// interests lapsed with the window, so each side likes afresh; the
	// second one is mutual but only points at the reconnect flow.
	if _, err := e.interests.RecordLike(ctx, "ava", "ben", testVenue); err != nil {
		t.Fatalf("RecordLike after expiry: %v", err)
	}
	relike, err := e.interests.RecordLike(ctx, "ben", "ava", testVenue)
	if err != nil {
		t.Fatalf("reciprocal RecordLike after expiry: %v", err)
	}
	if !relike.ReconnectRequired {
		t.Fatalf("post-expiry mutual: got ReconnectRequired=false, want true")
	}

	// Both sides ask for the reconnect; the second consent revives it.
	if revived, err := e.reconnect.RequestReconnect(ctx, matchID, "ava"); err != nil || revived {
		t.Fatalf("RequestReconnect(ava): revived=%v err=%v, want pending", revived, err)
	}
	revived, err := e.reconnect.RequestReconnect(ctx, matchID, "ben")
	if err != nil {
		t.Fatalf("RequestReconnect(ben): %v", err)
	}
	if !revived {
		t.Fatalf("second consent did not revive the match")
	}

	// Back on the active list with a fresh window, and the thread picks up
	// where it left off.
	active, err = e.matches.GetActiveMatches(ctx, "ben")
	if err != nil {
		t.Fatalf("GetActiveMatches after revival: %v", err)
	}
	if len(active) != 1 || active[0].MatchID != matchID {
		t.Fatalf("revived match missing from active list: %v", active)
	}
	if _, err := e.chat.AppendMessage(ctx, matchID, "ben", "round two?"); err != nil {
		t.Fatalf("AppendMessage after revival: %v", err)
	}
}
