package snapshot

import "strconv"

// Allocator hands out short element refs ("e1", "e2", ...) for one snapshot
// invocation. It is deliberately not a package global: every invocation
// creates its own allocator and passes it through the pipeline, so two
// concurrent snapshots can never race a shared counter.
type Allocator struct {
	counter int
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

func (a *Allocator) Reset() {
	a.counter = 0
}

// Next returns the next ref id, monotonic within a reset epoch.
func (a *Allocator) Next() string {
	a.counter++

	return "e" + strconv.Itoa(a.counter)
}

type pairKey struct {
	role string
	name string
}

// DuplicateTracker counts (role, name) collisions across one snapshot.
// NextIndex must be called exactly once per ref assignment; whether the
// index is kept on the entry is only known after the full pass, once
// Count reveals which keys recurred.
type DuplicateTracker struct {
	counts map[pairKey]int
}

func NewDuplicateTracker() *DuplicateTracker {
	return &DuplicateTracker{
		counts: make(map[pairKey]int),
	}
}

// NextIndex returns the 0-based sequence number for the pair and records
// the occurrence.
func (t *DuplicateTracker) NextIndex(role, name string) int {
	key := pairKey{role: role, name: name}
	idx := t.counts[key]
	t.counts[key] = idx + 1

	return idx
}

// Count reports how many times the pair occurred so far.
func (t *DuplicateTracker) Count(role, name string) int {
	return t.counts[pairKey{role: role, name: name}]
}
