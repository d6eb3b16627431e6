package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"mingle_server/models"
)

// fakeClock is a hand-stepped clock shared by every service in a test
// engine.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 1, 21, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

const (
	testWindow = 3 * time.Hour
	testLimit  = 3
	testVenue  = "venue-1"
)

// engine bundles the full service graph over a memory store.
type engine struct {
	store     *MemoryStore
	clock     *fakeClock
	checkIns  *CheckInService
	chat      *ChatService
	matches   *MatchService
	reconnect *ReconnectService
	interests *InterestService
	demo      *DemoService
}

func newTestEngine(t *testing.T) *engine {
	t.Helper()

	store := NewMemoryStore()
	clock := newFakeClock()
	notifier := LogNotifier{}

	checkIns := &CheckInService{Store: store, LikesLimit: testLimit, Now: clock.Now}
	chat := &ChatService{Store: store, Notifier: notifier, Now: clock.Now}
	matches := &MatchService{Store: store, Chat: chat, Notifier: notifier, Window: testWindow, SoonThreshold: 30 * time.Minute, Now: clock.Now}
	reconnect := &ReconnectService{Store: store, Notifier: notifier, Window: testWindow, Now: clock.Now}
	interests := &InterestService{
		Store:    store,
		CheckIns: checkIns,
		Decision: &MutualDecision{Interests: store, Now: clock.Now},
		Matches:  matches,
		Limit:    testLimit,
		Window:   testWindow,
		Now:      clock.Now,
	}
	demo := &DemoService{Store: store, CheckIns: checkIns}

	return &engine{
		store:     store,
		clock:     clock,
		checkIns:  checkIns,
		chat:      chat,
		matches:   matches,
		reconnect: reconnect,
		interests: interests,
		demo:      demo,
	}
}

// seedVenue creates the test venue and checks the given users in.
func (e *engine) seedVenue(t *testing.T, userIDs ...string) {
	t.Helper()
	ctx := context.Background()

	if err := e.store.PutVenue(ctx, models.Venue{VenueID: testVenue, Name: "The Blue Note"}); err != nil {
		t.Fatalf("PutVenue: %v", err)
	}
	for _, userID := range userIDs {
		if err := e.checkIns.CheckIn(ctx, userID, testVenue); err != nil {
			t.Fatalf("CheckIn(%s): %v", userID, err)
		}
	}
}

// like records a like and fails the test on error.
func (e *engine) like(t *testing.T, from, to string) LikeResult {
	t.Helper()
	result, err := e.interests.RecordLike(context.Background(), from, to, testVenue)
	if err != nil {
		t.Fatalf("RecordLike(%s->%s): %v", from, to, err)
	}
	return result
}
