package models

// Sender ids reserved for non-user messages
const (
	SenderSystem = "system"
)

// Match decision modes
const (
	DecisionMutual = "mutual"
	DecisionDemo   = "demo"
)

// Store backends
const (
	StoreDynamo = "dynamo"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Like outcomes reported to the caller
const (
	LikeRecorded = "recorded"
	LikeRepeated = "repeated"
	LikeMatched  = "matched"
)
