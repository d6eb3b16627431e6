package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"mingle_server/models"
	"mingle_server/routes"
	"mingle_server/services"
)

const apiVenue = "venue-1"

// newTestAPI wires the full route table over a memory store.
func newTestAPI(t *testing.T) (*mux.Router, *services.MemoryStore) {
	t.Helper()

	store := services.NewMemoryStore()
	now := time.Now
	notifier := services.LogNotifier{}

	checkInService := &services.CheckInService{Store: store, LikesLimit: 3, Now: now}
	chatService := &services.ChatService{Store: store, Notifier: notifier, Now: now}
	matchService := &services.MatchService{Store: store, Chat: chatService, Notifier: notifier, Window: 24 * time.Hour, SoonThreshold: 30 * time.Minute, Now: now}
	reconnectService := &services.ReconnectService{Store: store, Notifier: notifier, Window: 24 * time.Hour, Now: now}
	interestService := &services.InterestService{
		Store:    store,
		CheckIns: checkInService,
		Decision: &services.MutualDecision{Interests: store, Now: now},
		Matches:  matchService,
		Limit:    3,
		Window:   24 * time.Hour,
		Now:      now,
	}

	router := mux.NewRouter()
	routes.RegisterInterestRoutes(router, interestService)
	routes.RegisterMatchRoutes(router, matchService, reconnectService)
	routes.RegisterChatRoutes(router, chatService)
	routes.RegisterCheckInRoutes(router, checkInService)

	if err := store.PutVenue(context.Background(), models.Venue{VenueID: apiVenue, Name: "The Blue Note"}); err != nil {
		t.Fatalf("PutVenue: %v", err)
	}
	return router, store
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func checkIn(t *testing.T, router *mux.Router, userID string) {
	t.Helper()

	rec := doJSON(t, router, "POST", "/api/checkins", `{"userId":"`+userID+`","venueId":"`+apiVenue+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("check-in for %s: status %d: %s", userID, rec.Code, rec.Body.String())
	}
}

func TestLikeWithoutCheckInForbidden(t *testing.T) {
	t.Parallel()

	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "POST", "/api/likes", `{"fromUserId":"ava","toUserId":"ben","venueId":"venue-1"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("like without check-in: status %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestSelfLikeRejected(t *testing.T) {
	t.Parallel()

	router, _ := newTestAPI(t)
	checkIn(t, router, "ava")

	rec := doJSON(t, router, "POST", "/api/likes", `{"fromUserId":"ava","toUserId":"ava","venueId":"venue-1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("self-like: status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLikeQuotaExhaustionForbidden(t *testing.T) {
	t.Parallel()

	router, _ := newTestAPI(t)
	for _, userID := range []string{"ava", "ben", "cam", "dee", "eli"} {
		checkIn(t, router, userID)
	}

	for _, target := range []string{"ben", "cam", "dee"} {
		rec := doJSON(t, router, "POST", "/api/likes", `{"fromUserId":"ava","toUserId":"`+target+`","venueId":"venue-1"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("like of %s: status %d: %s", target, rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(t, router, "POST", "/api/likes", `{"fromUserId":"ava","toUserId":"eli","venueId":"venue-1"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("fourth like: status %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestMutualLikeReturnsMatchAndChatWorks(t *testing.T) {
	t.Parallel()

	router, _ := newTestAPI(t)
	checkIn(t, router, "ava")
	checkIn(t, router, "ben")

	doJSON(t, router, "POST", "/api/likes", `{"fromUserId":"ava","toUserId":"ben","venueId":"venue-1"}`)
	rec := doJSON(t, router, "POST", "/api/likes", `{"fromUserId":"ben","toUserId":"ava","venueId":"venue-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("reciprocal like: status %d: %s", rec.Code, rec.Body.String())
	}

	var likeResponse struct {
		Outcome string        `json:"outcome"`
		Mutual  bool          `json:"mutual"`
		Match   *models.Match `json:"match"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &likeResponse); err != nil {
		t.Fatalf("decode like response: %v", err)
	}
	if !likeResponse.Mutual || likeResponse.Match == nil {
		t.Fatalf("reciprocal like response: %s", rec.Body.String())
	}
	matchID := likeResponse.Match.MatchID

	// The seeded thread is readable and accepts messages.
	rec = doJSON(t, router, "POST", "/api/chats/"+matchID+"/messages", `{"senderId":"ava","content":"hey"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("append message: status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "GET", "/api/chats/"+matchID+"/messages", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get messages: status %d: %s", rec.Code, rec.Body.String())
	}
	var messages []models.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(messages) != 2 {
		t.Errorf("messages: got %d, want 2 (greeting plus opener)", len(messages))
	}
}

func TestReconnectByOutsiderForbidden(t *testing.T) {
	t.Parallel()

	router, store := newTestAPI(t)

	match := models.Match{
		MatchID:   "m-1",
		PairKey:   "PAIR#ava#ben",
		UserA:     "ava",
		UserB:     "ben",
		ExpiresAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
		UpdatedAt: "v1",
	}
	if _, err := store.CreateMatchIfAbsent(context.Background(), match); err != nil {
		t.Fatalf("CreateMatchIfAbsent: %v", err)
	}

	rec := doJSON(t, router, "POST", "/api/matches/m-1/reconnect", `{"userId":"mallory"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider reconnect: status %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestGetUnknownMatchNotFound(t *testing.T) {
	t.Parallel()

	router, _ := newTestAPI(t)

	rec := doJSON(t, router, "GET", "/api/matches/no-such-match", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown match: status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestAdmirersEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newTestAPI(t)
	checkIn(t, router, "ava")
	checkIn(t, router, "cam")

	for _, from := range []string{"ava", "cam"} {
		rec := doJSON(t, router, "POST", "/api/likes", `{"fromUserId":"`+from+`","toUserId":"ben","venueId":"venue-1"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("like from %s: status %d: %s", from, rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(t, router, "GET", "/api/likes/admirers?userId=ben", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admirers: status %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode admirers response: %v", err)
	}
	if resp["admirers"] != 2 {
		t.Errorf("admirers: got %d, want 2", resp["admirers"])
	}

	rec = doJSON(t, router, "GET", "/api/likes/admirers", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("admirers without userId: status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
