package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"mingle_server/models"
	"mingle_server/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a document-store Store backed by MongoDB.
type MongoStore struct {
	DB *mongo.Database
}

// NewMongoStore connects to MongoDB and returns a store bound to the given
// database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Println("✅ Connected to MongoDB")
	return &MongoStore{DB: client.Database(database)}, nil
}

func (s *MongoStore) interests() *mongo.Collection   { return s.DB.Collection("interests") }
func (s *MongoStore) quotas() *mongo.Collection      { return s.DB.Collection("likes_quota") }
func (s *MongoStore) matches() *mongo.Collection     { return s.DB.Collection("matches") }
func (s *MongoStore) threads() *mongo.Collection     { return s.DB.Collection("chat_threads") }
func (s *MongoStore) messagesCol() *mongo.Collection { return s.DB.Collection("messages") }
func (s *MongoStore) checkIns() *mongo.Collection    { return s.DB.Collection("check_ins") }
func (s *MongoStore) venues() *mongo.Collection      { return s.DB.Collection("venues") }

// --- InterestStore ---

func (s *MongoStore) GetInterest(ctx context.Context, fromUserID, toUserID string) (*models.Interest, error) {
	var interest models.Interest
	err := s.interests().FindOne(ctx, bson.M{"_id": interestKey(fromUserID, toUserID)}).Decode(&interest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &interest, nil
}

func (s *MongoStore) PutInterest(ctx context.Context, interest models.Interest) error {
	interest.PK = interestKey(interest.FromUserID, interest.ToUserID)
	interest.SK = utils.InterestSK(interest.ToUserID)
	_, err := s.interests().ReplaceOne(ctx, bson.M{"_id": interest.PK}, interest, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *MongoStore) GetInterestsForTarget(ctx context.Context, toUserID string) ([]models.Interest, error) {
	cursor, err := s.interests().Find(ctx, bson.M{"to_user_id": toUserID})
	if err != nil {
		return nil, storeErr(err)
	}
	defer cursor.Close(ctx)

	var interests []models.Interest
	if err := cursor.All(ctx, &interests); err != nil {
		return nil, storeErr(err)
	}
	return interests, nil
}

func (s *MongoStore) DecrementQuotaAndPutInterest(ctx context.Context, quota models.LikesQuota, prevRemaining int, interest models.Interest) error {
	quota.PK = utils.QuotaKey(quota.UserID, quota.VenueID)
	interest.PK = interestKey(interest.FromUserID, interest.ToUserID)
	interest.SK = utils.InterestSK(interest.ToUserID)

	session, err := s.DB.Client().StartSession()
	if err != nil {
		return storeErr(err)
	}
	defer session.EndSession(ctx)

	// Both writes land in one transaction so the quota and the interest
	// never diverge. The quota filter matches only when the stored remaining
	// count is still what the caller observed; upsert covers the
	// lazily-created case and a duplicate-key failure signals a lost race.
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"_id": quota.PK, "remaining": prevRemaining}
		if _, err := s.quotas().ReplaceOne(sessCtx, filter, quota, options.Replace().SetUpsert(true)); err != nil {
			return nil, err
		}
		if _, err := s.interests().ReplaceOne(sessCtx, bson.M{"_id": interest.PK}, interest, options.Replace().SetUpsert(true)); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return storeErr(err)
	}
	return nil
}

// --- QuotaStore ---

func (s *MongoStore) GetQuota(ctx context.Context, userID, venueID string) (*models.LikesQuota, error) {
	var quota models.LikesQuota
	err := s.quotas().FindOne(ctx, bson.M{"_id": utils.QuotaKey(userID, venueID)}).Decode(&quota)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &quota, nil
}

func (s *MongoStore) PutQuota(ctx context.Context, quota models.LikesQuota) error {
	quota.PK = utils.QuotaKey(quota.UserID, quota.VenueID)
	_, err := s.quotas().ReplaceOne(ctx, bson.M{"_id": quota.PK}, quota, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// --- MatchStore ---

func (s *MongoStore) GetMatchByPair(ctx context.Context, pairKey string) (*models.Match, error) {
	var match models.Match
	err := s.matches().FindOne(ctx, bson.M{"_id": pairKey}).Decode(&match)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &match, nil
}

func (s *MongoStore) GetMatchByID(ctx context.Context, matchID string) (*models.Match, error) {
	var match models.Match
	err := s.matches().FindOne(ctx, bson.M{"match_id": matchID}).Decode(&match)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &match, nil
}

func (s *MongoStore) GetMatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	cursor, err := s.matches().Find(ctx, bson.M{"$or": bson.A{
		bson.M{"user_a": userID},
		bson.M{"user_b": userID},
	}})
	if err != nil {
		return nil, storeErr(err)
	}
	defer cursor.Close(ctx)

	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, storeErr(err)
	}
	return matches, nil
}

func (s *MongoStore) CreateMatchIfAbsent(ctx context.Context, match models.Match) (*models.Match, error) {
	_, err := s.matches().InsertOne(ctx, match)
	if err == nil {
		return &match, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, storeErr(err)
	}

	existing, getErr := s.GetMatchByPair(ctx, match.PairKey)
	if getErr != nil {
		return nil, getErr
	}
	if existing == nil {
		return nil, storeErr(fmt.Errorf("match vanished after conflict on pair %s", match.PairKey))
	}
	return existing, ErrConflict
}

func (s *MongoStore) UpdateMatch(ctx context.Context, match models.Match) error {
	_, err := s.matches().ReplaceOne(ctx, bson.M{"_id": match.PairKey}, match, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *MongoStore) UpdateMatchIf(ctx context.Context, match models.Match, prevUpdatedAt string) error {
	result, err := s.matches().ReplaceOne(ctx, bson.M{"_id": match.PairKey, "updated_at": prevUpdatedAt}, match)
	if err != nil {
		return storeErr(err)
	}
	if result.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}

// --- ThreadStore ---

func (s *MongoStore) GetThread(ctx context.Context, matchID string) (*models.ChatThread, error) {
	var thread models.ChatThread
	err := s.threads().FindOne(ctx, bson.M{"_id": matchID}).Decode(&thread)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &thread, nil
}

func (s *MongoStore) CreateThreadIfAbsent(ctx context.Context, thread models.ChatThread) (*models.ChatThread, error) {
	_, err := s.threads().InsertOne(ctx, thread)
	if err == nil {
		return &thread, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, storeErr(err)
	}

	existing, getErr := s.GetThread(ctx, thread.MatchID)
	if getErr != nil {
		return nil, getErr
	}
	if existing == nil {
		return nil, storeErr(fmt.Errorf("thread vanished after conflict on match %s", thread.MatchID))
	}
	return existing, ErrConflict
}

func (s *MongoStore) MarkThreadSeeded(ctx context.Context, matchID string) error {
	result, err := s.threads().UpdateOne(ctx,
		bson.M{"_id": matchID, "seeded": false},
		bson.M{"$set": bson.M{"seeded": true}},
	)
	if err != nil {
		return storeErr(err)
	}
	if result.ModifiedCount == 0 {
		return ErrConflict
	}
	return nil
}

func (s *MongoStore) PutMessage(ctx context.Context, message models.Message) error {
	_, err := s.messagesCol().InsertOne(ctx, message)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *MongoStore) GetMessages(ctx context.Context, matchID string, limit int) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := s.messagesCol().Find(ctx, bson.M{"match_id": matchID}, opts)
	if err != nil {
		return nil, storeErr(err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, storeErr(err)
	}

	// Latest-first from the query; reverse for UI order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// --- CheckInStore ---

func (s *MongoStore) GetCheckIn(ctx context.Context, userID, venueID string) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	err := s.checkIns().FindOne(ctx, bson.M{"_id": utils.CheckInKey(userID, venueID)}).Decode(&checkIn)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &checkIn, nil
}

func (s *MongoStore) PutCheckIn(ctx context.Context, checkIn models.CheckIn) error {
	checkIn.PK = utils.CheckInKey(checkIn.UserID, checkIn.VenueID)
	_, err := s.checkIns().ReplaceOne(ctx, bson.M{"_id": checkIn.PK}, checkIn, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *MongoStore) GetVenue(ctx context.Context, venueID string) (*models.Venue, error) {
	var venue models.Venue
	err := s.venues().FindOne(ctx, bson.M{"_id": venueID}).Decode(&venue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &venue, nil
}

func (s *MongoStore) PutVenue(ctx context.Context, venue models.Venue) error {
	_, err := s.venues().ReplaceOne(ctx, bson.M{"_id": venue.VenueID}, venue, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *MongoStore) ListVenues(ctx context.Context) ([]models.Venue, error) {
	cursor, err := s.venues().Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	defer cursor.Close(ctx)

	var venues []models.Venue
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, storeErr(err)
	}
	return venues, nil
}
