package models

// Match is a mutual, time-boxed connection between two users.
// UserA/UserB are stored in canonical (lexicographic) order so the pair
// key is identical regardless of which side liked last.
type Match struct {
	MatchID       string            `dynamodbav:"matchId" json:"matchId" bson:"match_id"`
	PairKey       string            `dynamodbav:"pairKey" json:"pairKey" bson:"_id"` // "PAIR#userA#userB"
	UserA         string            `dynamodbav:"userA" json:"userA" bson:"user_a"`
	UserB         string            `dynamodbav:"userB" json:"userB" bson:"user_b"`
	VenueID       string            `dynamodbav:"venueId" json:"venueId" bson:"venue_id"`
	VenueName     string            `dynamodbav:"venueName" json:"venueName" bson:"venue_name"`
	CreatedAt     string            `dynamodbav:"createdAt" json:"createdAt" bson:"created_at"`
	UpdatedAt     string            `dynamodbav:"updatedAt" json:"updatedAt" bson:"updated_at"`
	ExpiresAt     string            `dynamodbav:"expiresAt" json:"expiresAt" bson:"expires_at"`
	Active        bool              `dynamodbav:"active" json:"active" bson:"active"` // cache only; expiresAt is authoritative
	ContactShared bool              `dynamodbav:"contactShared" json:"contactShared" bson:"contact_shared"`
	Met           bool              `dynamodbav:"met" json:"met" bson:"met"`
	ReconnectBy   map[string]string `dynamodbav:"reconnectBy,omitempty" json:"reconnectBy,omitempty" bson:"reconnect_by,omitempty"` // userId -> requestedAt
	ReconnectedAt *string           `dynamodbav:"reconnectedAt,omitempty" json:"reconnectedAt,omitempty" bson:"reconnected_at,omitempty"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// MatchIDIndex is the GSI for looking a match up by its synthetic id
const MatchIDIndex = "matchId-index" // PK: matchId
