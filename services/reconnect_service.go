package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const reconnectRetries = 3

// ReconnectService runs the two-sided consent protocol that revives an
// expired match. Each side's request is a timestamped flag on the match;
// once both flags are present the match is revived atomically and the flags
// are consumed, so a later request starts a fresh consent cycle.
type ReconnectService struct {
	Store    MatchStore
	Notifier Notifier
	Window   time.Duration
	Now      func() time.Time
}

// RequestReconnect records the requesting side's consent, and revives the
// match when the other side already consented. It returns whether this call
// revived the match.
func (s *ReconnectService) RequestReconnect(ctx context.Context, matchID, requestingUserID string) (bool, error) {
	for attempt := 0; attempt < reconnectRetries; attempt++ {
		match, err := s.Store.GetMatchByID(ctx, matchID)
		if err != nil {
			return false, err
		}
		if match == nil {
			return false, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
		}
		if requestingUserID != match.UserA && requestingUserID != match.UserB {
			return false, fmt.Errorf("user %s on match %s: %w", requestingUserID, matchID, ErrUnauthorized)
		}

		if _, already := match.ReconnectBy[requestingUserID]; already {
			// Consent already on record; nothing new to persist.
			return false, nil
		}

		now := s.Now()
		nowStr := now.Format(time.RFC3339)
		prevUpdatedAt := match.UpdatedAt

		if match.ReconnectBy == nil {
			match.ReconnectBy = map[string]string{}
		}
		match.ReconnectBy[requestingUserID] = nowStr

		revived := len(match.ReconnectBy) == 2
		if revived {
			match.Active = true
			match.ExpiresAt = now.Add(s.Window).Format(time.RFC3339)
			match.ReconnectBy = map[string]string{}
			match.ReconnectedAt = &nowStr
		}
		match.UpdatedAt = now.Format(time.RFC3339Nano)

		err = s.Store.UpdateMatchIf(ctx, *match, prevUpdatedAt)
		if errors.Is(err, ErrConflict) {
			// The other side moved first; reread and re-decide.
			continue
		}
		if err != nil {
			return false, err
		}

		if revived {
			matchesRevivedTotal.Inc()
			log.Printf("🔗 Match %s revived, new expiry %s", match.MatchID, match.ExpiresAt)
			s.Notifier.NotifyReconnected(*match)
		} else {
			reconnectRequestsTotal.Inc()
			log.Printf("🔗 Reconnect requested on match %s by %s", match.MatchID, requestingUserID)
			s.Notifier.NotifyReconnectRequest(*match, requestingUserID)
		}
		return revived, nil
	}

	return false, fmt.Errorf("reconnect on match %s kept losing to concurrent writers: %w", matchID, ErrStorageUnavailable)
}
