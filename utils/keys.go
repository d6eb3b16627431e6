package utils

// Key builders shared by the stores. Every backend has to agree on these so
// the logical layout (interests by from+to, quotas by user+venue, matches by
// canonical pair) survives a backend swap.

// CanonicalPair orders two user ids lexicographically so both like
// directions resolve to the same pair.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// PairKey builds the canonical match key for an unordered user pair.
func PairKey(a, b string) string {
	first, second := CanonicalPair(a, b)
	return "PAIR#" + first + "#" + second
}

// InterestPK builds the partition key for a user's outgoing likes.
func InterestPK(fromUserID string) string {
	return "USER#" + fromUserID
}

// InterestSK builds the sort key for a directional like.
func InterestSK(toUserID string) string {
	return "LIKE#" + toUserID
}

// QuotaKey builds the key for a per-user-per-venue like quota.
func QuotaKey(userID, venueID string) string {
	return "QUOTA#" + userID + "#" + venueID
}

// CheckInKey builds the key for a user's check-in at a venue.
func CheckInKey(userID, venueID string) string {
	return "CHECKIN#" + userID + "#" + venueID
}
