package services

import (
	"log"

	"mingle_server/models"
)

// Notifier delivers fire-and-forget notifications after a state change has
// already been persisted. Delivery failures are logged and never roll back
// the mutation that triggered them.
type Notifier interface {
	NotifyMatch(match models.Match)
	NotifyReconnectRequest(match models.Match, requestedBy string)
	NotifyReconnected(match models.Match)
	NotifyMessage(message models.Message)
}

// LogNotifier writes notifications to the log. Used when no socket server is
// wired up, and by tests.
type LogNotifier struct{}

func (LogNotifier) NotifyMatch(match models.Match) {
	log.Printf("🔔 Match %s: %s + %s at %s", match.MatchID, match.UserA, match.UserB, match.VenueName)
}

func (LogNotifier) NotifyReconnectRequest(match models.Match, requestedBy string) {
	log.Printf("🔔 Reconnect requested on match %s by %s", match.MatchID, requestedBy)
}

func (LogNotifier) NotifyReconnected(match models.Match) {
	log.Printf("🔔 Match %s reconnected, new expiry %s", match.MatchID, match.ExpiresAt)
}

func (LogNotifier) NotifyMessage(message models.Message) {
	log.Printf("🔔 New message on match %s from %s", message.MatchID, message.SenderID)
}
