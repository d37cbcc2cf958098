// Package keyring routes provider calls onto the highest-priority API
// credential that still has quota. Tiers that report exhaustion are blocked
// for a fixed cool-down and then quietly become eligible again.
package keyring

import (
	"strings"
	"sync"
	"time"
)

const DefaultCooldown = time.Hour

// Credential is one provider API key with its priority ranking.
type Credential struct {
	Provider string
	Key      string
	Priority int
}

type tierState struct {
	credential   Credential
	blockedUntil time.Time
}

// Router owns the shared tier state across concurrent match reconciliations.
// All access goes through the mutex; the clock is injected so cool-down
// behaviour is testable without wall time.
type Router struct {
	mu       sync.Mutex
	tiers    map[string][]*tierState
	cooldown time.Duration
	now      func() time.Time
}

func NewRouter(cooldown time.Duration) *Router {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Router{
		tiers:    make(map[string][]*tierState),
		cooldown: cooldown,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Test use only.
func (r *Router) WithClock(now func() time.Time) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	if now != nil {
		r.now = now
	}
	return r
}

// Register adds credentials for a provider. Keys keep the order given;
// earlier means higher priority.
func (r *Router) Register(provider string, keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		r.tiers[provider] = append(r.tiers[provider], &tierState{
			credential: Credential{
				Provider: provider,
				Key:      key,
				Priority: len(r.tiers[provider]) + 1,
			},
		})
	}
}

// Select returns the best eligible credential for the provider. ok=false
// means every tier is blocked or none is registered: the caller must treat
// the provider as unavailable this cycle and retry on a later one.
func (r *Router) Select(provider string) (Credential, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, tier := range r.tiers[provider] {
		if tier.blockedUntil.After(now) {
			continue
		}
		return tier.credential, true
	}
	return Credential{}, false
}

// MarkExhausted blocks the tier holding the given key for the cool-down
// window. Marking an unknown key is a no-op.
func (r *Router) MarkExhausted(provider, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tier := range r.tiers[provider] {
		if tier.credential.Key == key {
			tier.blockedUntil = r.now().Add(r.cooldown)
			return
		}
	}
}

// BlockedCount reports how many tiers of a provider are currently cooling
// down. Used for metrics and logs only.
func (r *Router) BlockedCount(provider string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	count := 0
	for _, tier := range r.tiers[provider] {
		if tier.blockedUntil.After(now) {
			count++
		}
	}
	return count
}

var quotaKeywords = []string{"limit", "quota", "blocked", "exceed"}

// IsQuotaReason pattern-matches a provider failure reason for quota
// exhaustion keywords, distinguishing it from a benign "no data yet" reply.
func IsQuotaReason(reason string) bool {
	lower := strings.ToLower(reason)
	for _, keyword := range quotaKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
