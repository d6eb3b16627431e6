package socket

import (
	"log"

	"mingle_server/models"

	socketio "github.com/googollee/go-socket.io"
)

// Notifier broadcasts engine events to connected clients. All methods are
// fire-and-forget: a broadcast that reaches no room is not an error, and
// nothing here ever fails the state change that triggered it.
type Notifier struct {
	Server *socketio.Server
}

func userRoom(userID string) string   { return "user:" + userID }
func matchRoom(matchID string) string { return "match:" + matchID }

func (n *Notifier) NotifyMatch(match models.Match) {
	if !n.Server.BroadcastToRoom("/", userRoom(match.UserA), "newMatch", match) {
		log.Printf("ℹ️ No listener for %s on newMatch", match.UserA)
	}
	n.Server.BroadcastToRoom("/", userRoom(match.UserB), "newMatch", match)
}

func (n *Notifier) NotifyReconnectRequest(match models.Match, requestedBy string) {
	// Only the other side needs to hear about it.
	target := match.UserA
	if requestedBy == match.UserA {
		target = match.UserB
	}
	n.Server.BroadcastToRoom("/", userRoom(target), "reconnectRequested", match)
}

func (n *Notifier) NotifyReconnected(match models.Match) {
	n.Server.BroadcastToRoom("/", userRoom(match.UserA), "reconnected", match)
	n.Server.BroadcastToRoom("/", userRoom(match.UserB), "reconnected", match)
}

func (n *Notifier) NotifyMessage(message models.Message) {
	n.Server.BroadcastToRoom("/", matchRoom(message.MatchID), "newMessage", message)
}
