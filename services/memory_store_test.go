package services

import (
	"context"
	"errors"
	"testing"

	"mingle_server/models"
	"mingle_server/utils"
)

func TestCreateMatchIfAbsentConflictReturnsWinner(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	winner := models.Match{MatchID: "m-1", PairKey: utils.PairKey("ava", "ben"), UserA: "ava", UserB: "ben"}
	if _, err := store.CreateMatchIfAbsent(ctx, winner); err != nil {
		t.Fatalf("first create: %v", err)
	}

	loser := winner
	loser.MatchID = "m-2"
	stored, err := store.CreateMatchIfAbsent(ctx, loser)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("second create: got %v, want ErrConflict", err)
	}
	// The loser adopts the winner's record.
	if stored == nil || stored.MatchID != "m-1" {
		t.Errorf("conflict result: got %v, want the first match", stored)
	}
}

func TestDecrementQuotaConflictOnStaleRead(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	quota := models.LikesQuota{UserID: "ava", VenueID: "venue-1", Remaining: 3, Limit: 3}
	if err := store.PutQuota(ctx, quota); err != nil {
		t.Fatalf("PutQuota: %v", err)
	}

	interest := models.Interest{FromUserID: "ava", ToUserID: "ben", VenueID: "venue-1", Active: true}

	spent := quota
	spent.Remaining = 2
	if err := store.DecrementQuotaAndPutInterest(ctx, spent, 3, interest); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	// A second writer that also read remaining=3 must lose.
	err := store.DecrementQuotaAndPutInterest(ctx, spent, 3, interest)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("stale decrement: got %v, want ErrConflict", err)
	}
}

func TestUpdateMatchIfStaleVersion(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	match := models.Match{MatchID: "m-1", PairKey: utils.PairKey("ava", "ben"), UpdatedAt: "v1"}
	if _, err := store.CreateMatchIfAbsent(ctx, match); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated := match
	updated.UpdatedAt = "v2"
	if err := store.UpdateMatchIf(ctx, updated, "v1"); err != nil {
		t.Fatalf("first conditional update: %v", err)
	}

	stale := match
	stale.UpdatedAt = "v3"
	err := store.UpdateMatchIf(ctx, stale, "v1")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("stale conditional update: got %v, want ErrConflict", err)
	}
}

func TestMarkThreadSeededOnlyOnce(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	thread := models.ChatThread{MatchID: "m-1", ThreadID: "t-1"}
	if _, err := store.CreateThreadIfAbsent(ctx, thread); err != nil {
		t.Fatalf("create thread: %v", err)
	}

	if err := store.MarkThreadSeeded(ctx, "m-1"); err != nil {
		t.Fatalf("first MarkThreadSeeded: %v", err)
	}
	err := store.MarkThreadSeeded(ctx, "m-1")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("second MarkThreadSeeded: got %v, want ErrConflict", err)
	}
}
