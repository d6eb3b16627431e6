package services

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// MatchDecision decides whether a freshly recorded like produces a match.
// The real strategy checks for a reciprocal interest; the demo strategy
// flips a weighted coin so a single demo user still gets matches.
type MatchDecision interface {
	IsMatch(ctx context.Context, fromUserID, toUserID string) (bool, error)
}

// MutualDecision matches when the target has an active, unexpired like back
// at the sender.
type MutualDecision struct {
	Interests InterestStore
	Now       func() time.Time
}

func (d *MutualDecision) IsMatch(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	reciprocal, err := d.Interests.GetInterest(ctx, toUserID, fromUserID)
	if err != nil {
		return false, err
	}
	if reciprocal == nil || !reciprocal.Active {
		return false, nil
	}
	return !InterestExpired(*reciprocal, d.Now()), nil
}

// DemoDecision matches with a fixed probability, independent of any
// reciprocal like.
type DemoDecision struct {
	Probability float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDemoDecision(probability float64) *DemoDecision {
	return &DemoDecision{
		Probability: probability,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (d *DemoDecision) IsMatch(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Float64() < d.Probability, nil
}
