package lockout

import (
	"math"
	"time"
)

// Tier is one step of the progressive lockout table. Attempts is an
// inclusive upper bound on the failed-attempt count.
type Tier struct {
	Attempts int
	Duration time.Duration
}

// Policy maps cumulative failed attempts to a lock duration
type Policy struct {
	tiers []Tier
}

// DefaultTiers is the production lockout table
var DefaultTiers = []Tier{
	{Attempts: 5, Duration: 15 * time.Second},
	{Attempts: 10, Duration: 60 * time.Second},
	{Attempts: 15, Duration: 5 * time.Minute},
	{Attempts: math.MaxInt, Duration: 60 * time.Minute},
}

// NewPolicy creates a policy from tiers sorted by ascending Attempts
func NewPolicy(tiers []Tier) *Policy {
	return &Policy{tiers: tiers}
}

// Default returns the policy built from DefaultTiers
func Default() *Policy {
	return NewPolicy(DefaultTiers)
}

// RequiredLockDuration returns the duration of the first tier whose bound
// is at least attempts.
func (p *Policy) RequiredLockDuration(attempts int) time.Duration {
	if t, ok := p.tierFor(attempts); ok {
		return t.Duration
	}
	return 0
}

// Threshold is the attempt count from which failures start locking
func (p *Policy) Threshold() int {
	if len(p.tiers) == 0 {
		return math.MaxInt
	}
	return p.tiers[0].Attempts
}

// ShouldLock reports whether a failure bringing the count to attempts locks the account
func (p *Policy) ShouldLock(attempts int) bool {
	return attempts >= p.Threshold() && p.RequiredLockDuration(attempts) > 0
}

// RemainingAttempts is the distance from attempts to the bound of its tier
func (p *Policy) RemainingAttempts(attempts int) int {
	t, ok := p.tierFor(attempts)
	if !ok {
		return 0
	}
	return t.Attempts - attempts
}

func (p *Policy) tierFor(attempts int) (Tier, bool) {
	for _, t := range p.tiers {
		if attempts <= t.Attempts {
			return t, true
		}
	}
	return Tier{}, false
}
