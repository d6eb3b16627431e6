package services

import (
	"context"

	"mingle_server/models"
)

// Store is the persistence port for the match lifecycle engine. Lookups
// return (nil, nil) when the record simply does not exist; backend failures
// come back wrapped around ErrStorageUnavailable.
type Store interface {
	InterestStore
	QuotaStore
	MatchStore
	ThreadStore
	CheckInStore
}

// InterestStore persists directional likes.
type InterestStore interface {
	GetInterest(ctx context.Context, fromUserID, toUserID string) (*models.Interest, error)
	PutInterest(ctx context.Context, interest models.Interest) error

	// GetInterestsForTarget returns every stored like aimed at the user,
	// active or not; the caller decides what still counts.
	GetInterestsForTarget(ctx context.Context, toUserID string) ([]models.Interest, error)

	// DecrementQuotaAndPutInterest applies the already-decremented quota and
	// the activated interest together or not at all. The previous remaining
	// count guards against concurrent decrements; a lost race returns
	// ErrConflict with no state change.
	DecrementQuotaAndPutInterest(ctx context.Context, quota models.LikesQuota, prevRemaining int, interest models.Interest) error
}

// QuotaStore persists per-user-per-venue like quotas.
type QuotaStore interface {
	GetQuota(ctx context.Context, userID, venueID string) (*models.LikesQuota, error)
	PutQuota(ctx context.Context, quota models.LikesQuota) error
}

// MatchStore persists matches keyed by the canonical pair key.
type MatchStore interface {
	GetMatchByPair(ctx context.Context, pairKey string) (*models.Match, error)
	GetMatchByID(ctx context.Context, matchID string) (*models.Match, error)
	GetMatchesForUser(ctx context.Context, userID string) ([]models.Match, error)

	// CreateMatchIfAbsent is an atomic check-then-act: exactly one writer per
	// pair key wins. The loser gets the winner's record plus ErrConflict.
	CreateMatchIfAbsent(ctx context.Context, match models.Match) (*models.Match, error)

	UpdateMatch(ctx context.Context, match models.Match) error

	// UpdateMatchIf is a compare-and-set keyed on the match's previous
	// updatedAt stamp. A lost race returns ErrConflict with no state change;
	// the caller rereads and decides whether the winner already did its work.
	UpdateMatchIf(ctx context.Context, match models.Match, prevUpdatedAt string) error
}

// ThreadStore persists chat threads and their messages.
type ThreadStore interface {
	GetThread(ctx context.Context, matchID string) (*models.ChatThread, error)
	CreateThreadIfAbsent(ctx context.Context, thread models.ChatThread) (*models.ChatThread, error)

	// MarkThreadSeeded flips the seeded flag exactly once; a second caller
	// gets ErrConflict and must not append another seed message.
	MarkThreadSeeded(ctx context.Context, matchID string) error

	PutMessage(ctx context.Context, message models.Message) error
	GetMessages(ctx context.Context, matchID string, limit int) ([]models.Message, error)
}

// CheckInStore persists venue check-ins and venue metadata.
type CheckInStore interface {
	GetCheckIn(ctx context.Context, userID, venueID string) (*models.CheckIn, error)
	PutCheckIn(ctx context.Context, checkIn models.CheckIn) error
	GetVenue(ctx context.Context, venueID string) (*models.Venue, error)
	PutVenue(ctx context.Context, venue models.Venue) error
	ListVenues(ctx context.Context) ([]models.Venue, error)
}
