package cooldown

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/mcoot/candyledger/internal/dependencies/clock"
)

// Kind names a throttled action
type Kind string

const (
	KindSteal   Kind = "steal"    // keyed by player
	KindClanWar Kind = "clan_war" // keyed by attacking clan
)

// ParseKind validates a kind name
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindSteal, KindClanWar:
		return k, true
	}
	return "", false
}

const shardCount = 32

type key struct {
	actor string
	kind  Kind
}

type shard struct {
	mu    sync.Mutex
	stamp map[key]time.Time
}

// Ledger records the last successful use of each (actor, kind) pair.
// TryConsume is atomic per pair: of two concurrent attempts inside one
// window, exactly one succeeds.
type Ledger struct {
	clock  clock.Clock
	shards [shardCount]*shard
}

// New creates an empty Ledger
func New(clk clock.Clock) *Ledger {
	l := &Ledger{clock: clk}
	for i := range l.shards {
		l.shards[i] = &shard{stamp: make(map[key]time.Time)}
	}
	return l
}

func (l *Ledger) shardFor(actor string) *shard {
	return l.shards[xxhash.Sum64String(actor)%shardCount]
}

// TryConsume stamps now if the window has elapsed since the last stamp.
// On denial it returns the time remaining and false.
func (l *Ledger) TryConsume(actor string, kind Kind, window time.Duration) (time.Duration, bool) {
	sh := l.shardFor(actor)
	now := l.clock.Now()
	k := key{actor: actor, kind: kind}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if remaining := remainingAt(sh.stamp[k], now, window); remaining > 0 {
		return remaining, false
	}
	sh.stamp[k] = now
	return 0, true
}

// Remaining reports the time left before actor may use kind again
func (l *Ledger) Remaining(actor string, kind Kind, window time.Duration) time.Duration {
	sh := l.shardFor(actor)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return remainingAt(sh.stamp[key{actor: actor, kind: kind}], l.clock.Now(), window)
}

// Reset clears the stamp for actor and kind. Reports whether one was held.
func (l *Ledger) Reset(actor string, kind Kind) bool {
	sh := l.shardFor(actor)
	k := key{actor: actor, kind: kind}
	sh.mu.Lock()
	defer sh.mu.Unlock()
	_, ok := sh.stamp[k]
	delete(sh.stamp, k)
	return ok
}

// Prune drops stamps older than maxWindow. Returns the number removed.
func (l *Ledger) Prune(maxWindow time.Duration) int {
	cutoff := l.clock.Now().Add(-maxWindow)
	removed := 0
	for _, sh := range l.shards {
		sh.mu.Lock()
		for k, t := range sh.stamp {
			if !t.After(cutoff) {
				delete(sh.stamp, k)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

func remainingAt(last, now time.Time, window time.Duration) time.Duration {
	if last.IsZero() {
		return 0
	}
	if elapsed := now.Sub(last); elapsed < window {
		return window - elapsed
	}
	return 0
}

// Active counts the actors holding a stamp for kind
func (l *Ledger) Active(kind Kind) int {
	n := 0
	for _, sh := range l.shards {
		sh.mu.Lock()
		for k := range sh.stamp {
			if k.kind == kind {
				n++
			}
		}
		sh.mu.Unlock()
	}
	return n
}
