package services

import (
	"context"
	"log"

	"mingle_server/models"
)

// DemoService seeds a demo environment: a few venues with users already
// checked in. Seeding is explicit (the caller hits the demo route once) and
// idempotence comes from persisted state, not an in-memory flag: a second
// call sees the venues and does nothing.
type DemoService struct {
	Store    Store
	CheckIns *CheckInService
}

var demoVenues = []models.Venue{
	{VenueID: "venue-blue-note", Name: "The Blue Note"},
	{VenueID: "venue-roastery", Name: "Third Wave Roastery"},
	{VenueID: "venue-rooftop", Name: "Harbor Rooftop Bar"},
}

var demoCheckIns = map[string][]string{
	"venue-blue-note": {"demo-ava", "demo-ben", "demo-chloe"},
	"venue-roastery":  {"demo-dan", "demo-elle"},
	"venue-rooftop":   {"demo-finn", "demo-gia", "demo-hugo"},
}

// SeedDemoData populates demo venues and check-ins. It reports whether this
// call did the seeding.
func (s *DemoService) SeedDemoData(ctx context.Context) (bool, error) {
	venues, err := s.Store.ListVenues(ctx)
	if err != nil {
		return false, err
	}
	if len(venues) > 0 {
		log.Println("ℹ️ Demo data already seeded, skipping")
		return false, nil
	}

	for _, venue := range demoVenues {
		if err := s.Store.PutVenue(ctx, venue); err != nil {
			return false, err
		}
	}
	for venueID, userIDs := range demoCheckIns {
		for _, userID := range userIDs {
			if err := s.CheckIns.CheckIn(ctx, userID, venueID); err != nil {
				return false, err
			}
		}
	}

	log.Printf("✅ Seeded %d demo venues", len(demoVenues))
	return true, nil
}
