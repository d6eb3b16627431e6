package services

import "errors"

// Sentinel errors for the match lifecycle engine. Controllers map these to
// HTTP statuses; services wrap them with context via fmt.Errorf and %w.
var (
	// ErrNotCheckedIn means a like was attempted while the sender is not
	// checked into the venue. The user can retry after checking in.
	ErrNotCheckedIn = errors.New("user is not checked in at this venue")

	// ErrQuotaExceeded means the per-venue like limit is used up. It clears
	// only on venue re-check-in or an explicit reset.
	ErrQuotaExceeded = errors.New("like quota exceeded for this venue")

	// ErrUnauthorized means the caller is not a party to the match.
	ErrUnauthorized = errors.New("user is not a party to this match")

	// ErrNotFound means the referenced match, interest or thread does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrStorageUnavailable means the persistence backend could not complete
	// the operation. Nothing was confirmed written; the caller should retry.
	ErrStorageUnavailable = errors.New("storage backend unavailable")

	// ErrConflict means a create-if-absent race lost to a concurrent writer.
	// Callers treat this as success-with-existing-record, never as a
	// user-visible failure.
	ErrConflict = errors.New("record already created by a concurrent writer")
)
