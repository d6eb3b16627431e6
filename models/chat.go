package models

type ChatThread struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId" bson:"_id"`
	ThreadID  string `dynamodbav:"threadId" json:"threadId" bson:"thread_id"`
	Name      string `dynamodbav:"name,omitempty" json:"name,omitempty" bson:"name,omitempty"`
	Seeded    bool   `dynamodbav:"seeded" json:"seeded" bson:"seeded"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt" bson:"created_at"`
}

type Message struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId" bson:"match_id"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt" bson:"created_at"`
	MessageID string `dynamodbav:"messageId" json:"messageId" bson:"message_id"`
	SenderID  string `dynamodbav:"senderId" json:"senderId" bson:"sender_id"` // user id, or SenderSystem
	Content   string `dynamodbav:"content" json:"content" bson:"content"`
	IsUnread  bool   `dynamodbav:"isUnread" json:"isUnread" bson:"is_unread"`
}

// ChatThreadsTable is the DynamoDB table name for chat threads
const ChatThreadsTable = "ChatThreads"

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
