package store

import (
	"cmp"
	"slices"
	"sync"
)

// entry is a single record guarded by its own lock. A deleted entry stays
// tombstoned so goroutines that were waiting on it can tell it is gone.
type entry[V any] struct {
	mu      sync.Mutex
	val     *V
	deleted bool
}

// table maps keys to record entries. The map lock is only held for lookups
// and inserts, never while waiting on an entry lock.
type table[K cmp.Ordered, V any] struct {
	mu sync.RWMutex
	m  map[K]*entry[V]
}

func newTable[K cmp.Ordered, V any]() *table[K, V] {
	return &table[K, V]{m: make(map[K]*entry[V])}
}

func (t *table[K, V]) get(k K) (*entry[V], bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.m[k]
	return e, ok
}

// getOrCreate returns the entry for k, inserting one built by create if absent.
// created reports whether a new entry was inserted.
func (t *table[K, V]) getOrCreate(k K, create func() *V) (e *entry[V], created bool) {
	if e, ok := t.get(k); ok {
		return e, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.m[k]; ok {
		return e, false
	}
	e = &entry[V]{val: create()}
	t.m[k] = e
	return e, true
}

// insertIfAbsent adds v under k unless the key is taken
func (t *table[K, V]) insertIfAbsent(k K, v *V) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.m[k]; ok {
		return false
	}
	t.m[k] = &entry[V]{val: v}
	return true
}

// lock returns the locked live entry for k, or false if there is none.
// The caller must unlock the entry.
func (t *table[K, V]) lock(k K) (*entry[V], bool) {
	for {
		e, ok := t.get(k)
		if !ok {
			return nil, false
		}
		e.mu.Lock()
		if !e.deleted {
			return e, true
		}
		e.mu.Unlock()
		// Deleted while we waited; look again in case it was recreated.
		if cur, ok := t.get(k); !ok || cur == e {
			return nil, false
		}
	}
}

// lockOrCreate is lock with get-or-create semantics
func (t *table[K, V]) lockOrCreate(k K, create func() *V) (e *entry[V], created bool) {
	for {
		e, created = t.getOrCreate(k, create)
		e.mu.Lock()
		if !e.deleted {
			return e, created
		}
		e.mu.Unlock()
	}
}

// remove tombstones a locked entry and drops it from the map
func (t *table[K, V]) remove(k K, e *entry[V]) {
	e.deleted = true
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.m[k] == e {
		delete(t.m, k)
	}
}

func (t *table[K, V]) has(k K) bool {
	_, ok := t.get(k)
	return ok
}

func (t *table[K, V]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}

// keys returns the current keys in ascending order
func (t *table[K, V]) keys() []K {
	t.mu.RLock()
	ks := make([]K, 0, len(t.m))
	for k := range t.m {
		ks = append(ks, k)
	}
	t.mu.RUnlock()
	slices.Sort(ks)
	return ks
}

// each visits a copy of every live record. Each record is copied under its own lock.
func (t *table[K, V]) each(clone func(*V) *V, visit func(K, *V)) {
	for _, k := range t.keys() {
		e, ok := t.lock(k)
		if !ok {
			continue
		}
		v := clone(e.val)
		e.mu.Unlock()
		visit(k, v)
	}
}

// replace swaps in a whole new set of records
func (t *table[K, V]) replace(vals map[K]*V) {
	m := make(map[K]*entry[V], len(vals))
	for k, v := range vals {
		m[k] = &entry[V]{val: v}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m = m
}
