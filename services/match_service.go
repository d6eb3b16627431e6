package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"mingle_server/models"
	"mingle_server/utils"

	"github.com/google/uuid"
)

// MatchService owns Match records: creation on mutual interest, active-match
// queries, and the met flag. Reconnect transitions live in ReconnectService.
type MatchService struct {
	Store         MatchStore
	Chat          *ChatService
	Notifier      Notifier
	Window        time.Duration
	SoonThreshold time.Duration
	Now           func() time.Time
}

// MutualResult reports what happened when mutual interest was detected.
type MutualResult struct {
	Match             *models.Match
	Created           bool
	ReconnectRequired bool
}

// OnMutualDetected creates the match for an unordered pair, exactly once per
// activation. Both sides of a near-simultaneous mutual like can call this;
// the create-if-absent on the canonical pair key guarantees a single winner
// and the loser adopts the winner's record. A pair whose previous match has
// expired is not silently reactivated here; that goes through reconnect.
func (s *MatchService) OnMutualDetected(ctx context.Context, userA, userB, venueID, venueName string) (MutualResult, error) {
	first, second := utils.CanonicalPair(userA, userB)
	pairKey := utils.PairKey(userA, userB)
	now := s.Now()

	existing, err := s.Store.GetMatchByPair(ctx, pairKey)
	if err != nil {
		return MutualResult{}, err
	}
	if existing != nil {
		if IsExpired(*existing, now) {
			return MutualResult{Match: existing, ReconnectRequired: true}, nil
		}
		return MutualResult{Match: existing}, nil
	}

	match := models.Match{
		MatchID:     uuid.NewString(),
		PairKey:     pairKey,
		UserA:       first,
		UserB:       second,
		VenueID:     venueID,
		VenueName:   venueName,
		CreatedAt:   now.Format(time.RFC3339),
		UpdatedAt:   now.Format(time.RFC3339Nano),
		ExpiresAt:   now.Add(s.Window).Format(time.RFC3339),
		Active:      true,
		ReconnectBy: map[string]string{},
	}

	stored, err := s.Store.CreateMatchIfAbsent(ctx, match)
	if errors.Is(err, ErrConflict) {
		// The other side's like created it a moment ago; that is our match.
		log.Printf("ℹ️ Match for pair %s already created concurrently", pairKey)
		if IsExpired(*stored, now) {
			return MutualResult{Match: stored, ReconnectRequired: true}, nil
		}
		return MutualResult{Match: stored}, nil
	}
	if err != nil {
		return MutualResult{}, err
	}

	matchesCreatedTotal.Inc()
	log.Printf("💘 Match %s created for %s + %s at %s", stored.MatchID, first, second, venueName)

	if _, err := s.Chat.EnsureThread(ctx, stored.MatchID, venueName); err != nil {
		// The match is already persisted; the binder will be retried on the
		// next EnsureThread call.
		log.Printf("⚠️ Failed to ensure chat thread for match %s: %v", stored.MatchID, err)
	}
	s.Notifier.NotifyMatch(*stored)

	return MutualResult{Match: stored, Created: true}, nil
}

// GetActiveMatches returns the user's matches whose window is still open.
// expiresAt decides; the stored active flag is only a cache and is refreshed
// on the returned copies.
func (s *MatchService) GetActiveMatches(ctx context.Context, userID string) ([]models.Match, error) {
	all, err := s.Store.GetMatchesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	active := []models.Match{}
	for _, match := range all {
		if IsExpired(match, now) {
			continue
		}
		match.Active = true
		active = append(active, match)
	}
	return active, nil
}

// MatchSummary is a match annotated with its live countdown.
type MatchSummary struct {
	models.Match
	RemainingSeconds int64 `json:"remainingSeconds"`
	ExpiringSoon     bool  `json:"expiringSoon"`
}

// GetActiveMatchSummaries is GetActiveMatches with countdown fields for
// clients driving an on-screen timer.
func (s *MatchService) GetActiveMatchSummaries(ctx context.Context, userID string) ([]MatchSummary, error) {
	active, err := s.GetActiveMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	summaries := make([]MatchSummary, 0, len(active))
	for _, match := range active {
		summaries = append(summaries, MatchSummary{
			Match:            match,
			RemainingSeconds: RemainingSeconds(match, now),
			ExpiringSoon:     IsExpiringSoon(match, now, s.SoonThreshold),
		})
	}
	return summaries, nil
}

// GetMatch looks a match up by its id.
func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	match, err := s.Store.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return match, nil
}

// MarkAsMet records that the two people actually met.
func (s *MatchService) MarkAsMet(ctx context.Context, matchID string) error {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	match.Met = true
	match.UpdatedAt = s.Now().Format(time.RFC3339Nano)
	return s.Store.UpdateMatch(ctx, *match)
}
