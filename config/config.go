package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config carries all env-driven settings for the server.
type Config struct {
	Port                  string
	StoreBackend          string // dynamo | mongo | memory
	AWSRegion             string
	MongoURI              string
	MongoDatabase         string
	MatchWindow           time.Duration
	LikesPerVenueLimit    int
	ExpiringSoonThreshold time.Duration
	MatchDecision         string // mutual | demo
	DemoMatchProbability  float64
}

// Load reads configuration from the environment, falling back to defaults.
func Load() Config {
	cfg := Config{
		Port:                  getEnv("PORT", "8080"),
		StoreBackend:          getEnv("STORE_BACKEND", "memory"),
		AWSRegion:             os.Getenv("AWS_REGION"),
		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:         getEnv("MONGO_DATABASE", "mingle"),
		MatchWindow:           getDuration("MATCH_WINDOW", 24*time.Hour),
		LikesPerVenueLimit:    getInt("LIKES_PER_VENUE_LIMIT", 3),
		ExpiringSoonThreshold: getDuration("EXPIRING_SOON_THRESHOLD", 30*time.Minute),
		MatchDecision:         getEnv("MATCH_DECISION", "mutual"),
		DemoMatchProbability:  getFloat("DEMO_MATCH_PROBABILITY", 0.6),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Invalid value for %s: %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("⚠️ Invalid value for %s: %q, using default %v", key, v, fallback)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ Invalid value for %s: %q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
