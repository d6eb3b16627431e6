package services

import (
	"context"
	"sync"

	"mingle_server/models"
	"mingle_server/utils"
)

// MemoryStore is an in-process Store used for demo mode and tests. All the
// conditional semantics of the production backends are reproduced under a
// single mutex.
type MemoryStore struct {
	mu        sync.RWMutex
	interests map[string]models.Interest // key: from|to
	quotas    map[string]models.LikesQuota
	matches   map[string]models.Match // key: pairKey
	threads   map[string]models.ChatThread
	messages  map[string][]models.Message // key: matchID, append order
	checkIns  map[string]models.CheckIn
	venues    map[string]models.Venue
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		interests: make(map[string]models.Interest),
		quotas:    make(map[string]models.LikesQuota),
		matches:   make(map[string]models.Match),
		threads:   make(map[string]models.ChatThread),
		messages:  make(map[string][]models.Message),
		checkIns:  make(map[string]models.CheckIn),
		venues:    make(map[string]models.Venue),
	}
}

func interestKey(fromUserID, toUserID string) string {
	return fromUserID + "|" + toUserID
}

// --- InterestStore ---

func (s *MemoryStore) GetInterest(ctx context.Context, fromUserID, toUserID string) (*models.Interest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interest, ok := s.interests[interestKey(fromUserID, toUserID)]
	if !ok {
		return nil, nil
	}
	return &interest, nil
}

func (s *MemoryStore) PutInterest(ctx context.Context, interest models.Interest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	interest.PK = utils.InterestPK(interest.FromUserID)
	interest.SK = utils.InterestSK(interest.ToUserID)
	s.interests[interestKey(interest.FromUserID, interest.ToUserID)] = interest
	return nil
}

func (s *MemoryStore) GetInterestsForTarget(ctx context.Context, toUserID string) ([]models.Interest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var interests []models.Interest
	for _, interest := range s.interests {
		if interest.ToUserID == toUserID {
			interests = append(interests, interest)
		}
	}
	return interests, nil
}

func (s *MemoryStore) DecrementQuotaAndPutInterest(ctx context.Context, quota models.LikesQuota, prevRemaining int, interest models.Interest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := utils.QuotaKey(quota.UserID, quota.VenueID)
	if existing, ok := s.quotas[key]; ok && existing.Remaining != prevRemaining {
		return ErrConflict
	}

	quota.PK = key
	s.quotas[key] = quota

	interest.PK = utils.InterestPK(interest.FromUserID)
	interest.SK = utils.InterestSK(interest.ToUserID)
	s.interests[interestKey(interest.FromUserID, interest.ToUserID)] = interest
	return nil
}

// --- QuotaStore ---

func (s *MemoryStore) GetQuota(ctx context.Context, userID, venueID string) (*models.LikesQuota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quota, ok := s.quotas[utils.QuotaKey(userID, venueID)]
	if !ok {
		return nil, nil
	}
	return &quota, nil
}

func (s *MemoryStore) PutQuota(ctx context.Context, quota models.LikesQuota) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quota.PK = utils.QuotaKey(quota.UserID, quota.VenueID)
	s.quotas[quota.PK] = quota
	return nil
}

// --- MatchStore ---

func (s *MemoryStore) GetMatchByPair(ctx context.Context, pairKey string) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, ok := s.matches[pairKey]
	if !ok {
		return nil, nil
	}
	return &match, nil
}

func (s *MemoryStore) GetMatchByID(ctx context.Context, matchID string) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, match := range s.matches {
		if match.MatchID == matchID {
			m := match
			return &m, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetMatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []models.Match
	for _, match := range s.matches {
		if match.UserA == userID || match.UserB == userID {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (s *MemoryStore) CreateMatchIfAbsent(ctx context.Context, match models.Match) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.matches[match.PairKey]; ok {
		e := existing
		return &e, ErrConflict
	}
	s.matches[match.PairKey] = match
	return &match, nil
}

func (s *MemoryStore) UpdateMatch(ctx context.Context, match models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches[match.PairKey] = match
	return nil
}

func (s *MemoryStore) UpdateMatchIf(ctx context.Context, match models.Match, prevUpdatedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.matches[match.PairKey]
	if !ok || existing.UpdatedAt != prevUpdatedAt {
		return ErrConflict
	}
	s.matches[match.PairKey] = match
	return nil
}

// --- ThreadStore ---

func (s *MemoryStore) GetThread(ctx context.Context, matchID string) (*models.ChatThread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thread, ok := s.threads[matchID]
	if !ok {
		return nil, nil
	}
	return &thread, nil
}

func (s *MemoryStore) CreateThreadIfAbsent(ctx context.Context, thread models.ChatThread) (*models.ChatThread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.threads[thread.MatchID]; ok {
		e := existing
		return &e, ErrConflict
	}
	s.threads[thread.MatchID] = thread
	return &thread, nil
}

func (s *MemoryStore) MarkThreadSeeded(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[matchID]
	if !ok || thread.Seeded {
		return ErrConflict
	}
	thread.Seeded = true
	s.threads[matchID] = thread
	return nil
}

func (s *MemoryStore) PutMessage(ctx context.Context, message models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[message.MatchID] = append(s.messages[message.MatchID], message)
	return nil
}

func (s *MemoryStore) GetMessages(ctx context.Context, matchID string, limit int) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.messages[matchID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	messages := make([]models.Message, len(all))
	copy(messages, all)
	return messages, nil
}

// --- CheckInStore ---

func (s *MemoryStore) GetCheckIn(ctx context.Context, userID, venueID string) (*models.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	checkIn, ok := s.checkIns[utils.CheckInKey(userID, venueID)]
	if !ok {
		return nil, nil
	}
	return &checkIn, nil
}

func (s *MemoryStore) PutCheckIn(ctx context.Context, checkIn models.CheckIn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkIn.PK = utils.CheckInKey(checkIn.UserID, checkIn.VenueID)
	s.checkIns[checkIn.PK] = checkIn
	return nil
}

func (s *MemoryStore) GetVenue(ctx context.Context, venueID string) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	venue, ok := s.venues[venueID]
	if !ok {
		return nil, nil
	}
	return &venue, nil
}

func (s *MemoryStore) PutVenue(ctx context.Context, venue models.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.venues[venue.VenueID] = venue
	return nil
}

func (s *MemoryStore) ListVenues(ctx context.Context) ([]models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var venues []models.Venue
	for _, venue := range s.venues {
		venues = append(venues, venue)
	}
	return venues, nil
}
