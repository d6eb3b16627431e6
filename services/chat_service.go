package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"mingle_server/models"

	"github.com/google/uuid"
)

const defaultMessageLimit = 50

// messageTimeFormat keeps a fixed-width fractional second so message
// timestamps sort lexicographically in chronological order. RFC3339Nano
// drops trailing zeros, which would misorder the sort key on backends that
// compare timestamps as strings.
const messageTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ChatService binds a chat thread to every match and owns message
// persistence. Thread creation and greeting seeding are both idempotent, so
// the match path can call EnsureThread blindly.
type ChatService struct {
	Store    ThreadStore
	Notifier Notifier
	Now      func() time.Time
}

// EnsureThread guarantees a chat thread exists for the match and that it
// carries exactly one seeded system greeting, no matter how many times it is
// called. venueName labels the thread with where the match happened; it may
// be empty.
func (s *ChatService) EnsureThread(ctx context.Context, matchID, venueName string) (*models.ChatThread, error) {
	thread := models.ChatThread{
		MatchID:   matchID,
		ThreadID:  uuid.NewString(),
		Name:      venueName,
		Seeded:    false,
		CreatedAt: s.Now().Format(time.RFC3339),
	}

	stored, err := s.Store.CreateThreadIfAbsent(ctx, thread)
	if errors.Is(err, ErrConflict) {
		// Someone got there first; their record is the thread.
		err = nil
	}
	if err != nil {
		return nil, err
	}

	// Whoever wins the seeded flag appends the one greeting.
	switch seedErr := s.Store.MarkThreadSeeded(ctx, matchID); {
	case seedErr == nil:
		greeting := "You matched! Say hi before the clock runs out."
		if venueName != "" {
			greeting = fmt.Sprintf("You matched at %s! Say hi before the clock runs out.", venueName)
		}
		if err := s.appendMessage(ctx, matchID, models.SenderSystem, greeting); err != nil {
			return nil, err
		}
		stored.Seeded = true
	case errors.Is(seedErr, ErrConflict):
		// Already seeded.
	default:
		return nil, seedErr
	}

	return stored, nil
}

// AppendMessage persists a message on an existing thread and emits the
// new-message event once the write is confirmed.
func (s *ChatService) AppendMessage(ctx context.Context, matchID, senderID, content string) (*models.Message, error) {
	thread, err := s.Store.GetThread(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, fmt.Errorf("thread for match %s: %w", matchID, ErrNotFound)
	}

	message := models.Message{
		MatchID:   matchID,
		CreatedAt: s.Now().UTC().Format(messageTimeFormat),
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		IsUnread:  true,
	}
	if err := s.Store.PutMessage(ctx, message); err != nil {
		return nil, err
	}

	messagesAppendedTotal.Inc()
	s.Notifier.NotifyMessage(message)
	return &message, nil
}

// GetMessages returns the thread's messages in UI order (newest at the
// bottom).
func (s *ChatService) GetMessages(ctx context.Context, matchID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	messages, err := s.Store.GetMessages(ctx, matchID, limit)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Found %d messages for matchId: %s", len(messages), matchID)
	return messages, nil
}

// appendMessage skips the thread-existence check for internal callers that
// just created the thread.
func (s *ChatService) appendMessage(ctx context.Context, matchID, senderID, content string) error {
	message := models.Message{
		MatchID:   matchID,
		CreatedAt: s.Now().UTC().Format(messageTimeFormat),
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		IsUnread:  true,
	}
	return s.Store.PutMessage(ctx, message)
}
