package services

import (
	"context"
	"errors"
	"fmt"

	"mingle_server/models"
	"mingle_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore is the production Store backed by DynamoDB.
type DynamoStore struct {
	Dynamo *DynamoService
}

func NewDynamoStore(dynamo *DynamoService) *DynamoStore {
	return &DynamoStore{Dynamo: dynamo}
}

// storeErr maps backend failures onto ErrStorageUnavailable while letting
// ErrConflict through untouched.
func storeErr(err error) error {
	if errors.Is(err, ErrConflict) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// --- InterestStore ---

func (s *DynamoStore) GetInterest(ctx context.Context, fromUserID, toUserID string) (*models.Interest, error) {
	key := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: utils.InterestPK(fromUserID)},
		"SK": &types.AttributeValueMemberS{Value: utils.InterestSK(toUserID)},
	}

	item, err := s.Dynamo.GetItem(ctx, models.InterestsTable, key)
	if err != nil {
		return nil, storeErr(err)
	}
	if item == nil {
		return nil, nil
	}

	var interest models.Interest
	if err := attributevalue.UnmarshalMap(item, &interest); err != nil {
		return nil, storeErr(err)
	}
	return &interest, nil
}

func (s *DynamoStore) PutInterest(ctx context.Context, interest models.Interest) error {
	interest.PK = utils.InterestPK(interest.FromUserID)
	interest.SK = utils.InterestSK(interest.ToUserID)
	if err := s.Dynamo.PutItem(ctx, models.InterestsTable, interest); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *DynamoStore) GetInterestsForTarget(ctx context.Context, toUserID string) ([]models.Interest, error) {
	keyCondition := "#toUserId = :toUserId"
	expressionNames := map[string]string{"#toUserId": "toUserId"}
	expressionValues := map[string]types.AttributeValue{
		":toUserId": &types.AttributeValueMemberS{Value: toUserID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.InterestsTable, models.ToUserIndex, keyCondition, expressionValues, expressionNames, 100)
	if err != nil {
		return nil, storeErr(err)
	}

	var interests []models.Interest
	if err := attributevalue.UnmarshalListOfMaps(items, &interests); err != nil {
		return nil, storeErr(err)
	}
	return interests, nil
}

func (s *DynamoStore) DecrementQuotaAndPutInterest(ctx context.Context, quota models.LikesQuota, prevRemaining int, interest models.Interest) error {
	quota.PK = utils.QuotaKey(quota.UserID, quota.VenueID)
	interest.PK = utils.InterestPK(interest.FromUserID)
	interest.SK = utils.InterestSK(interest.ToUserID)

	quotaItem, err := attributevalue.MarshalMap(quota)
	if err != nil {
		return storeErr(err)
	}
	interestItem, err := attributevalue.MarshalMap(interest)
	if err != nil {
		return storeErr(err)
	}

	// The quota put is guarded so a concurrent like cannot spend the same
	// remaining count twice; the interest rides in the same transaction.
	condition := "attribute_not_exists(PK) OR remaining = :prev"
	quotaTable := models.LikesQuotaTable
	interestsTable := models.InterestsTable
	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           &quotaTable,
				Item:                quotaItem,
				ConditionExpression: &condition,
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":prev": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", prevRemaining)},
				},
			},
		},
		{
			Put: &types.Put{
				TableName: &interestsTable,
				Item:      interestItem,
			},
		},
	}

	if err := s.Dynamo.TransactWriteItems(ctx, items); err != nil {
		return storeErr(err)
	}
	return nil
}

// --- QuotaStore ---

func (s *DynamoStore) GetQuota(ctx context.Context, userID, venueID string) (*models.LikesQuota, error) {
	key := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: utils.QuotaKey(userID, venueID)},
	}

	item, err := s.Dynamo.GetItem(ctx, models.LikesQuotaTable, key)
	if err != nil {
		return nil, storeErr(err)
	}
	if item == nil {
		return nil, nil
	}

	var quota models.LikesQuota
	if err := attributevalue.UnmarshalMap(item, &quota); err != nil {
		return nil, storeErr(err)
	}
	return &quota, nil
}

func (s *DynamoStore) PutQuota(ctx context.Context, quota models.LikesQuota) error {
	quota.PK = utils.QuotaKey(quota.UserID, quota.VenueID)
	if err := s.Dynamo.PutItem(ctx, models.LikesQuotaTable, quota); err != nil {
		return storeErr(err)
	}
	return nil
}

// --- MatchStore ---

func (s *DynamoStore) GetMatchByPair(ctx context.Context, pairKey string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: pairKey},
	}

	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		return nil, storeErr(err)
	}
	if item == nil {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, storeErr(err)
	}
	return &match, nil
}

func (s *DynamoStore) GetMatchByID(ctx context.Context, matchID string) (*models.Match, error) {
	keyCondition := "#matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionNames := map[string]string{
		"#matchId": "matchId",
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.MatchIDIndex, keyCondition, expressionValues, expressionNames, 1)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(items[0], &match); err != nil {
		return nil, storeErr(err)
	}
	return &match, nil
}

func (s *DynamoStore) GetMatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	filterExpression := "userA = :user OR userB = :user"
	expressionValues := map[string]types.AttributeValue{
		":user": &types.AttributeValueMemberS{Value: userID},
	}

	var matches []models.Match
	if err := s.Dynamo.ScanWithFilter(ctx, models.MatchesTable, filterExpression, expressionValues, nil, &matches); err != nil {
		return nil, storeErr(err)
	}
	return matches, nil
}

func (s *DynamoStore) CreateMatchIfAbsent(ctx context.Context, match models.Match) (*models.Match, error) {
	err := s.Dynamo.PutItemIfAbsent(ctx, models.MatchesTable, "pairKey", match)
	if err == nil {
		return &match, nil
	}
	if !errors.Is(err, ErrConflict) {
		return nil, storeErr(err)
	}

	// Lost the race: hand back the winner's record.
	existing, getErr := s.GetMatchByPair(ctx, match.PairKey)
	if getErr != nil {
		return nil, getErr
	}
	if existing == nil {
		return nil, storeErr(fmt.Errorf("match vanished after conflict on pair %s", match.PairKey))
	}
	return existing, ErrConflict
}

func (s *DynamoStore) UpdateMatch(ctx context.Context, match models.Match) error {
	if err := s.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *DynamoStore) UpdateMatchIf(ctx context.Context, match models.Match, prevUpdatedAt string) error {
	item, err := attributevalue.MarshalMap(match)
	if err != nil {
		return storeErr(err)
	}

	condition := "updatedAt = :prev"
	tableName := models.MatchesTable
	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           &tableName,
				Item:                item,
				ConditionExpression: &condition,
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":prev": &types.AttributeValueMemberS{Value: prevUpdatedAt},
				},
			},
		},
	}

	if err := s.Dynamo.TransactWriteItems(ctx, items); err != nil {
		return storeErr(err)
	}
	return nil
}

// --- ThreadStore ---

func (s *DynamoStore) GetThread(ctx context.Context, matchID string) (*models.ChatThread, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.ChatThreadsTable, key)
	if err != nil {
		return nil, storeErr(err)
	}
	if item == nil {
		return nil, nil
	}

	var thread models.ChatThread
	if err := attributevalue.UnmarshalMap(item, &thread); err != nil {
		return nil, storeErr(err)
	}
	return &thread, nil
}

func (s *DynamoStore) CreateThreadIfAbsent(ctx context.Context, thread models.ChatThread) (*models.ChatThread, error) {
	err := s.Dynamo.PutItemIfAbsent(ctx, models.ChatThreadsTable, "matchId", thread)
	if err == nil {
		return &thread, nil
	}
	if !errors.Is(err, ErrConflict) {
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

func (s *DynamoStore) MarkThreadSeeded(ctx context.Context, matchID string) error {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	updateExpression := "SET seeded = :true"
	conditionExpression := "seeded = :false"
	expressionValues := map[string]types.AttributeValue{
		":true":  &types.AttributeValueMemberBOOL{Value: true},
		":false": &types.AttributeValueMemberBOOL{Value: false},
	}

	err := s.Dynamo.UpdateItemConditional(ctx, models.ChatThreadsTable, updateExpression, conditionExpression, key, expressionValues, nil)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *DynamoStore) PutMessage(ctx context.Context, message models.Message) error {
	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *DynamoStore) GetMessages(ctx context.Context, matchID string, limit int) ([]models.Message, error) {
	keyCondition := "#matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionNames := map[string]string{
		"#matchId": "matchId",
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, int32(limit), true)
	if err != nil {
		return nil, storeErr(err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, storeErr(err)
	}

	// Latest-first from the query; reverse so the newest message lands at the
	// bottom for the UI.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// --- CheckInStore ---

func (s *DynamoStore) GetCheckIn(ctx context.Context, userID, venueID string) (*models.CheckIn, error) {
	key := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: utils.CheckInKey(userID, venueID)},
	}

	item, err := s.Dynamo.GetItem(ctx, models.CheckInsTable, key)
	if err != nil {
		return nil, storeErr(err)
	}
	if item == nil {
		return nil, nil
	}

	var checkIn models.CheckIn
	if err := attributevalue.UnmarshalMap(item, &checkIn); err != nil {
		return nil, storeErr(err)
	}
	return &checkIn, nil
}

func (s *DynamoStore) PutCheckIn(ctx context.Context, checkIn models.CheckIn) error {
	checkIn.PK = utils.CheckInKey(checkIn.UserID, checkIn.VenueID)
	if err := s.Dynamo.PutItem(ctx, models.CheckInsTable, checkIn); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *DynamoStore) GetVenue(ctx context.Context, venueID string) (*models.Venue, error) {
	key := map[string]types.AttributeValue{
		"venueId": &types.AttributeValueMemberS{Value: venueID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.VenuesTable, key)
	if err != nil {
		return nil, storeErr(err)
	}
	if item == nil {
		return nil, nil
	}

	var venue models.Venue
	if err := attributevalue.UnmarshalMap(item, &venue); err != nil {
		return nil, storeErr(err)
	}
	return &venue, nil
}

func (s *DynamoStore) PutVenue(ctx context.Context, venue models.Venue) error {
	if err := s.Dynamo.PutItem(ctx, models.VenuesTable, venue); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *DynamoStore) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if err := s.Dynamo.ScanWithFilter(ctx, models.VenuesTable, "", nil, nil, &venues); err != nil {
		return nil, storeErr(err)
	}
	return venues, nil
}
