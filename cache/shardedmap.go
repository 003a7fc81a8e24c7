package cache

import "sync"

const defaultShardCount = 32

// Hashable is satisfied by any key a shardedMap can route: model.ID[Marker]
// implements it directly (Hash returns its raw snowflake), and composite
// keys such as memberKey combine their fields into one value.
//
// Generalizes the repeated pattern of a dedicated `sync.RWMutex`-guarded
// map per top-level resource collection into one reusable N-way sharded
// map, so a write to one shard never blocks a reader on another.
type Hashable interface {
	Hash() uint64
}

type shard[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// shardedMap is a fixed N-way sharded concurrent map. Each shard owns its
// own RWMutex, so a writer on one shard never blocks a reader on another.
type shardedMap[K Hashable, V any] struct {
	shards [defaultShardCount]*shard[K, V]
}

func newShardedMap[K Hashable, V any]() *shardedMap[K, V] {
	sm := &shardedMap[K, V]{}
	for i := range sm.shards {
		sm.shards[i] = &shard[K, V]{m: make(map[K]V)}
	}

	return sm
}

func (sm *shardedMap[K, V]) shardFor(key K) *shard[K, V] {
	return sm.shards[key.Hash()%defaultShardCount]
}

// Get returns a copy of the value stored at key, if present. Copying out
// of the lock means the caller never holds a guard across a suspension
// point.
func (sm *shardedMap[K, V]) Get(key K) (V, bool) {
	sh := sm.shardFor(key)

	sh.mu.RLock()
	defer sh.mu.RUnlock()

	v, ok := sh.m[key]

	return v, ok
}

func (sm *shardedMap[K, V]) Set(key K, value V) {
	sh := sm.shardFor(key)

	sh.mu.Lock()
	sh.m[key] = value
	sh.mu.Unlock()
}

func (sm *shardedMap[K, V]) Delete(key K) {
	sh := sm.shardFor(key)

	sh.mu.Lock()
	delete(sh.m, key)
	sh.mu.Unlock()
}

// Mutate applies fn to the current value (or the zero value, if absent)
// and stores the result, all under a single shard lock. Used for
// read-modify-write updates (e.g. merging a partial update) that would
// otherwise race between a Get and a following Set.
func (sm *shardedMap[K, V]) Mutate(key K, fn func(current V, existed bool) V) {
	sh := sm.shardFor(key)

	sh.mu.Lock()
	current, existed := sh.m[key]
	sh.m[key] = fn(current, existed)
	sh.mu.Unlock()
}

// Len reports the total number of entries across every shard. Intended
// for diagnostics/tests, not hot paths.
func (sm *shardedMap[K, V]) Len() int {
	total := 0

	for _, sh := range sm.shards {
		sh.mu.RLock()
		total += len(sh.m)
		sh.mu.RUnlock()
	}

	return total
}

// Each invokes fn for a snapshot copy of every entry. Each shard is copied
// under its read lock and fn runs after that lock is released, so fn may
// call back into the shardedMap without deadlocking; entries written
// during the iteration may or may not be visited.
func (sm *shardedMap[K, V]) Each(fn func(key K, value V)) {
	for _, sh := range sm.shards {
		sh.mu.RLock()
		snapshot := make(map[K]V, len(sh.m))
		for k, v := range sh.m {
			snapshot[k] = v
		}
		sh.mu.RUnlock()

		for k, v := range snapshot {
			fn(k, v)
		}
	}
}
