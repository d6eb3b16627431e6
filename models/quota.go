package models

type LikesQuota struct {
	PK        string `dynamodbav:"PK" json:"PK" bson:"_id"` // "QUOTA#userId#venueId"
	UserID    string `dynamodbav:"userId" json:"userId" bson:"user_id"`
	VenueID   string `dynamodbav:"venueId" json:"venueId" bson:"venue_id"`
	Remaining int    `dynamodbav:"remaining" json:"remaining" bson:"remaining"`
	Limit     int    `dynamodbav:"quotaLimit" json:"quotaLimit" bson:"quota_limit"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt" bson:"created_at"`
	UpdatedAt string `dynamodbav:"updatedAt" json:"updatedAt" bson:"updated_at"`
}

// LikesQuotaTable is the DynamoDB table name for per-venue like quotas
const LikesQuotaTable = "LikesQuota"
