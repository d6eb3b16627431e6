package models

type Interest struct {
	PK         string `dynamodbav:"PK" json:"PK" bson:"_id"` // "USER#fromUserId"
	SK         string `dynamodbav:"SK" json:"SK" bson:"sk"`  // "LIKE#toUserId"
	FromUserID string `dynamodbav:"fromUserId" json:"fromUserId" bson:"from_user_id"`
	ToUserID   string `dynamodbav:"toUserId" json:"toUserId" bson:"to_user_id"`
	VenueID    string `dynamodbav:"venueId" json:"venueId" bson:"venue_id"`
	Active     bool   `dynamodbav:"active" json:"active" bson:"active"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt" bson:"created_at"`
	ExpiresAt  string `dynamodbav:"expiresAt" json:"expiresAt" bson:"expires_at"`
}

// InterestsTable is the DynamoDB table name for directional likes
const InterestsTable = "Interests"

// ToUserIndex is the GSI for querying likes where the user is the target
const ToUserIndex = "toUserId-index" // PK: toUserId
