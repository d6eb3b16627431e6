package models

type CheckIn struct {
	PK           string `dynamodbav:"PK" json:"PK" bson:"_id"` // "CHECKIN#userId#venueId"
	UserID       string `dynamodbav:"userId" json:"userId" bson:"user_id"`
	VenueID      string `dynamodbav:"venueId" json:"venueId" bson:"venue_id"`
	Active       bool   `dynamodbav:"active" json:"active" bson:"active"`
	CheckedInAt  string `dynamodbav:"checkedInAt" json:"checkedInAt" bson:"checked_in_at"`
	CheckedOutAt string `dynamodbav:"checkedOutAt,omitempty" json:"checkedOutAt,omitempty" bson:"checked_out_at,omitempty"`
}

type Venue struct {
	VenueID string `dynamodbav:"venueId" json:"venueId" bson:"_id"`
	Name    string `dynamodbav:"name" json:"name" bson:"name"`
}

// CheckInsTable is the DynamoDB table name for venue check-ins
const CheckInsTable = "CheckIns"

// VenuesTable is the DynamoDB table name for venue metadata
const VenuesTable = "Venues"
