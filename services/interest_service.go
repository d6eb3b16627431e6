package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"mingle_server/models"
	"mingle_server/utils"
)

const quotaRetries = 3

// CheckInDirectory is the outbound port to the check-in collaborator.
type CheckInDirectory interface {
	IsCheckedIn(ctx context.Context, userID, venueID string) (bool, error)
	GetVenueName(ctx context.Context, venueID string) (string, error)
}

// LikeResult is what a recordLike call tells the UI.
type LikeResult struct {
	Outcome           string        `json:"outcome"` // recorded | repeated | matched
	Mutual            bool          `json:"mutual"`
	Remaining         int           `json:"remainingLikes"`
	ReconnectRequired bool          `json:"reconnectRequired,omitempty"`
	Match             *models.Match `json:"match,omitempty"`
}

// InterestService is the ledger of directional likes and the per-venue
// quota that throttles them.
type InterestService struct {
	Store    Store
	CheckIns CheckInDirectory
	Decision MatchDecision
	Matches  *MatchService
	Limit    int
	Window   time.Duration
	Now      func() time.Time
}

// RecordLike records a directional like. The quota decrement and the
// interest activation land together or not at all; a repeat like of an
// already-active target consumes nothing. When the decision strategy says
// the pair matched, the match registry takes over before this returns.
func (s *InterestService) RecordLike(ctx context.Context, fromUserID, toUserID, venueID string) (LikeResult, error) {
	checkedIn, err := s.CheckIns.IsCheckedIn(ctx, fromUserID, venueID)
	if err != nil {
		return LikeResult{}, err
	}
	if !checkedIn {
		likesTotal.WithLabelValues("not_checked_in").Inc()
		return LikeResult{}, fmt.Errorf("user %s at venue %s: %w", fromUserID, venueID, ErrNotCheckedIn)
	}

	now := s.Now()

	existing, err := s.Store.GetInterest(ctx, fromUserID, toUserID)
	if err != nil {
		return LikeResult{}, err
	}
	if existing != nil && existing.Active && !InterestExpired(*existing, now) {
		return s.repeatedLike(ctx, fromUserID, toUserID, venueID)
	}

	quota, err := s.loadOrInitQuota(ctx, fromUserID, venueID, now)
	if err != nil {
		return LikeResult{}, err
	}

	interest := models.Interest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		VenueID:    venueID,
		Active:     true,
		CreatedAt:  now.Format(time.RFC3339),
		ExpiresAt:  now.Add(s.Window).Format(time.RFC3339),
	}

	remaining, err := s.spendQuota(ctx, quota, interest, now)
	if err != nil {
		return LikeResult{}, err
	}

	matched, err := s.Decision.IsMatch(ctx, fromUserID, toUserID)
	if err != nil {
		return LikeResult{}, err
	}
	if !matched {
		likesTotal.WithLabelValues("recorded").Inc()
		return LikeResult{Outcome: models.LikeRecorded, Remaining: remaining}, nil
	}

	venueName, err := s.CheckIns.GetVenueName(ctx, venueID)
	if err != nil {
		log.Printf("⚠️ Failed to resolve venue name for %s: %v", venueID, err)
		venueName = ""
	}

	result, err := s.Matches.OnMutualDetected(ctx, fromUserID, toUserID, venueID, venueName)
	if err != nil {
		return LikeResult{}, err
	}

	likesTotal.WithLabelValues("matched").Inc()
	return LikeResult{
		Outcome:           models.LikeMatched,
		Mutual:            true,
		Remaining:         remaining,
		ReconnectRequired: result.ReconnectRequired,
		Match:             result.Match,
	}, nil
}

// UndoLike deactivates the interest. The spent quota stays spent; the
// attempt consumed it, not the outcome.
func (s *InterestService) UndoLike(ctx context.Context, fromUserID, toUserID string) error {
	interest, err := s.Store.GetInterest(ctx, fromUserID, toUserID)
	if err != nil {
		return err
	}
	if interest == nil || !interest.Active {
		return fmt.Errorf("like %s -> %s: %w", fromUserID, toUserID, ErrNotFound)
	}

	interest.Active = false
	return s.Store.PutInterest(ctx, *interest)
}

// IsMutual reports whether both directional likes are active and unexpired.
// It is symmetric by construction.
func (s *InterestService) IsMutual(ctx context.Context, userA, userB string) (bool, error) {
	now := s.Now()
	for _, pair := range [][2]string{{userA, userB}, {userB, userA}} {
		interest, err := s.Store.GetInterest(ctx, pair[0], pair[1])
		if err != nil {
			return false, err
		}
		if interest == nil || !interest.Active || InterestExpired(*interest, now) {
			return false, nil
		}
	}
	return true, nil
}

// AdmirerCount returns how many users currently hold an active, unexpired
// like aimed at the user. Only the count leaves this service; who the
// admirers are stays hidden until a match reveals them.
func (s *InterestService) AdmirerCount(ctx context.Context, userID string) (int, error) {
	interests, err := s.Store.GetInterestsForTarget(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := s.Now()
	count := 0
	for _, interest := range interests {
		if interest.Active && !InterestExpired(interest, now) {
			count++
		}
	}
	return count, nil
}

// RemainingLikes returns the user's remaining quota at the venue; a user who
// never liked anyone there still has the full limit.
func (s *InterestService) RemainingLikes(ctx context.Context, userID, venueID string) (int, error) {
	quota, err := s.Store.GetQuota(ctx, userID, venueID)
	if err != nil {
		return 0, err
	}
	if quota == nil {
		return s.Limit, nil
	}
	return quota.Remaining, nil
}

// repeatedLike answers an idempotent re-like without touching the quota.
// Its mutual flag means "you are in a live match with this person", which is
// deliberately wider than IsMutual: an undone like on the other side ends
// reciprocity but not the match, and the UI should keep pointing at the
// match until its window closes.
func (s *InterestService) repeatedLike(ctx context.Context, fromUserID, toUserID, venueID string) (LikeResult, error) {
	remaining, err := s.RemainingLikes(ctx, fromUserID, venueID)
	if err != nil {
		return LikeResult{}, err
	}

	match, err := s.Store.GetMatchByPair(ctx, utils.PairKey(fromUserID, toUserID))
	if err != nil {
		return LikeResult{}, err
	}

	mutual := match != nil && !IsExpired(*match, s.Now())
	result := LikeResult{Outcome: models.LikeRepeated, Mutual: mutual, Remaining: remaining}
	if mutual {
		result.Match = match
	}

	likesTotal.WithLabelValues("repeated").Inc()
	return result, nil
}

func (s *InterestService) loadOrInitQuota(ctx context.Context, userID, venueID string, now time.Time) (*models.LikesQuota, error) {
	quota, err := s.Store.GetQuota(ctx, userID, venueID)
	if err != nil {
		return nil, err
	}
	if quota == nil {
		nowStr := now.Format(time.RFC3339)
		quota = &models.LikesQuota{
			UserID:    userID,
			VenueID:   venueID,
			Remaining: s.Limit,
			Limit:     s.Limit,
			CreatedAt: nowStr,
			UpdatedAt: nowStr,
		}
	}
	return quota, nil
}

// spendQuota applies the decrement and the interest together, retrying the
// compare-and-set against concurrent likes from the same user.
func (s *InterestService) spendQuota(ctx context.Context, quota *models.LikesQuota, interest models.Interest, now time.Time) (int, error) {
	for attempt := 0; attempt < quotaRetries; attempt++ {
		if quota.Remaining <= 0 {
			likesTotal.WithLabelValues("quota_exceeded").Inc()
			return 0, fmt.Errorf("user %s at venue %s: %w", quota.UserID, quota.VenueID, ErrQuotaExceeded)
		}

		prev := quota.Remaining
		spent := *quota
		spent.Remaining = prev - 1
		spent.UpdatedAt = now.Format(time.RFC3339)

		err := s.Store.DecrementQuotaAndPutInterest(ctx, spent, prev, interest)
		if err == nil {
			return spent.Remaining, nil
		}
		if !errors.Is(err, ErrConflict) {
			return 0, err
		}

		// Another like from the same user spent this count first; reread.
		fresh, getErr := s.Store.GetQuota(ctx, quota.UserID, quota.VenueID)
		if getErr != nil {
			return 0, getErr
		}
		if fresh == nil {
			return 0, fmt.Errorf("quota for %s at %s vanished: %w", quota.UserID, quota.VenueID, ErrStorageUnavailable)
		}
		quota = fresh
	}

	return 0, fmt.Errorf("quota update for %s kept losing to concurrent writers: %w", quota.UserID, ErrStorageUnavailable)
}
