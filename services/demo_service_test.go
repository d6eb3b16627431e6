package services

import (
	"context"
	"testing"
)

func TestSeedDemoDataIdempotent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	ctx := context.Background()

	seeded, err := e.demo.SeedDemoData(ctx)
	if err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}
	if !seeded {
		t.Errorf("first seed: got seeded=false, want true")
	}

	venues, err := e.store.ListVenues(ctx)
	if err != nil {
		t.Fatalf("ListVenues: %v", err)
	}
	if len(venues) == 0 {
		t.Fatalf("seed created no venues")
	}

	// Seeding again is a no-op once state is on record.
	seeded, err = e.demo.SeedDemoData(ctx)
	if err != nil {
		t.Fatalf("second SeedDemoData: %v", err)
	}
	if seeded {
		t.Errorf("second seed: got seeded=true, want false")
	}

	again, err := e.store.ListVenues(ctx)
	if err != nil {
		t.Fatalf("ListVenues: %v", err)
	}
	if len(again) != len(venues) {
		t.Errorf("venue count changed on reseed: got %d, want %d", len(again), len(venues))
	}
}

func TestSeedDemoDataChecksUsersIn(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.demo.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}

	for venueID, userIDs := range demoCheckIns {
		for _, userID := range userIDs {
			checkedIn, err := e.checkIns.IsCheckedIn(ctx, userID, venueID)
			if err != nil {
				t.Fatalf("IsCheckedIn(%s, %s): %v", userID, venueID, err)
			}
			if !checkedIn {
				t.Errorf("demo user %s not checked in at %s", userID, venueID)
			}
		}
	}
}
