package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"mingle_server/models"
)

// CheckInService tracks who is at which venue and owns the quota resets
// tied to the check-in lifecycle. The match engine only consumes its
// IsCheckedIn and GetVenueName lookups.
type CheckInService struct {
	Store      Store
	LikesLimit int
	Now        func() time.Time
}

// CheckIn marks the user present at the venue. Checking back in after a
// checkout resets the user's like quota for that venue.
func (s *CheckInService) CheckIn(ctx context.Context, userID, venueID string) error {
	venue, err := s.Store.GetVenue(ctx, venueID)
	if err != nil {
		return err
	}
	if venue == nil {
		return fmt.Errorf("venue %s: %w", venueID, ErrNotFound)
	}

	now := s.Now()
	prior, err := s.Store.GetCheckIn(ctx, userID, venueID)
	if err != nil {
		return err
	}

	checkIn := models.CheckIn{
		UserID:      userID,
		VenueID:     venueID,
		Active:      true,
		CheckedInAt: now.Format(time.RFC3339),
	}
	if err := s.Store.PutCheckIn(ctx, checkIn); err != nil {
		return err
	}

	// A returning visit gets a fresh quota; a first visit leaves the quota to
	// be created lazily at the first like.
	if prior != nil && !prior.Active {
		if err := s.ResetQuota(ctx, userID, venueID); err != nil {
			return err
		}
		log.Printf("🔁 Reset like quota for %s at %s on re-check-in", userID, venueID)
	}

	log.Printf("📍 %s checked in at %s", userID, venue.Name)
	return nil
}

// CheckOut marks the user as no longer at the venue.
func (s *CheckInService) CheckOut(ctx context.Context, userID, venueID string) error {
	checkIn, err := s.Store.GetCheckIn(ctx, userID, venueID)
	if err != nil {
		return err
	}
	if checkIn == nil || !checkIn.Active {
		return fmt.Errorf("check-in for %s at %s: %w", userID, venueID, ErrNotFound)
	}

	checkIn.Active = false
	checkIn.CheckedOutAt = s.Now().Format(time.RFC3339)
	return s.Store.PutCheckIn(ctx, *checkIn)
}

// IsCheckedIn reports whether the user is currently checked in at the venue.
func (s *CheckInService) IsCheckedIn(ctx context.Context, userID, venueID string) (bool, error) {
	checkIn, err := s.Store.GetCheckIn(ctx, userID, venueID)
	if err != nil {
		return false, err
	}
	return checkIn != nil && checkIn.Active, nil
}

// GetVenueName resolves a venue id to its display name.
func (s *CheckInService) GetVenueName(ctx context.Context, venueID string) (string, error) {
	venue, err := s.Store.GetVenue(ctx, venueID)
	if err != nil {
		return "", err
	}
	if venue == nil {
		return "", fmt.Errorf("venue %s: %w", venueID, ErrNotFound)
	}
	return venue.Name, nil
}

// ResetQuota restores the user's full like quota at the venue.
func (s *CheckInService) ResetQuota(ctx context.Context, userID, venueID string) error {
	now := s.Now().Format(time.RFC3339)
	return s.Store.PutQuota(ctx, models.LikesQuota{
		UserID:    userID,
		VenueID:   venueID,
		Remaining: s.LikesLimit,
		Limit:     s.LikesLimit,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
