// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package swiss

const (
	defaultCapacity   = 1024
	defaultLoadFactor = 0.875
)

// slot holds one key/value pair. Its contents are only meaningful when the
// parallel ctrl byte at the same index is occupied; a slot behind an EMPTY
// or DELETED control byte is logically uninitialized even though Go always
// gives it a zeroed K and V.
type slot[K comparable, V any] struct {
	key   K
	value V
}

// Table is a flat, open-addressed hash map keyed by a parallel control-byte
// array, following the design spec.md §3-4 lay out: one contiguous slots
// array, one contiguous ctrls array of equal length, groupSize-wide linear
// probing, and doubling rebuilds. There is no bucket directory: capacity
// always refers to the single array pair's length.
type Table[K comparable, V any] struct {
	ctrls      []ctrl
	slots      []slot[K, V]
	capacity   int
	count      int
	growthLeft int
	loadFactor float64

	initialCapacity int
	hash            Hasher[K]
	allocator       Allocator[K, V]
	reporter        Reporter

	scratch [groupSize]ctrl
}

// New constructs a Table with the default initial capacity of 1024 and a
// load factor of 0.875, per spec.md §3 and §4.6. Options may override the
// hasher, load factor, allocator, reporter, or initial capacity.
func New[K comparable, V any](opts ...option[K, V]) *Table[K, V] {
	t := &Table[K, V]{
		loadFactor: defaultLoadFactor,
		allocator:  defaultAllocator[K, V]{},
		reporter:   defaultReporter{},
	}
	for _, opt := range opts {
		opt.apply(t)
	}
	if t.hash == nil {
		h, ok := defaultHasher[K]()
		if !ok {
			t.reporter.Report(UnsupportedKey, "no default Hasher for key type; supply one with WithHasher")
			panic(newError(UnsupportedKey, "no default Hasher for key type"))
		}
		t.hash = h
	}
	capacity := t.initialCapacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	t.allocateArrays(capacity)
	return t
}

// allocateArrays replaces the ctrls/slots pair with a freshly allocated
// pair of the given capacity, all EMPTY, and resets count/growthLeft to
// match. capacity must be > 0; callers enforce that invariant.
func (t *Table[K, V]) allocateArrays(capacity int) {
	t.ctrls = t.allocator.AllocControls(capacity)
	t.slots = t.allocator.AllocSlots(capacity)
	t.capacity = capacity
	t.count = 0
	t.growthLeft = int(float64(capacity) * t.loadFactor)
}

func (t *Table[K, V]) mustBeActive() {
	if t.ctrls == nil {
		t.reporter.Report(PreconditionViolation, "table is not constructed")
		panic(newError(PreconditionViolation, "table is not constructed"))
	}
}

// probeFind locates key. If present it returns its slot index and true. If
// absent it returns false and the index where key should be inserted: the
// first DELETED slot seen before the terminating EMPTY slot, or that EMPTY
// slot itself if no DELETED slot was seen along the way (spec.md §4.3,
// with the tombstone-preferring insertion target as a deliberate
// quality-of-implementation improvement — see DESIGN.md). Termination is
// guaranteed as long as invariant 2 holds: at least one EMPTY slot always
// exists.
func (t *Table[K, V]) probeFind(key K) (idx int, found bool) {
	h := t.hash(key)
	h1, h2 := splitHash(h)
	seq := makeProbeSeq(h1, t.capacity)
	tombstone := -1

	for {
		group := loadGroup(t.ctrls, &t.scratch, seq.offset)
		matchH2, matchEmpty, matchEmptyOrDeleted := scanGroup(group, h2)

		for m := matchH2; m.any(); {
			bit := m.first()
			i := (seq.offset + bit) % t.capacity
			if t.slots[i].key == key {
				return i, true
			}
			m = m.clear(bit)
		}

		if matchEmpty.any() {
			if tombstone >= 0 {
				return tombstone, false
			}
			return (seq.offset + matchEmptyOrDeleted.first()) % t.capacity, false
		}

		if tombstone < 0 {
			if deleted := matchEmptyOrDeleted &^ matchEmpty; deleted.any() {
				tombstone = (seq.offset + deleted.first()) % t.capacity
			}
		}

		seq = seq.next()
	}
}

// placeAt writes key/value into idx, which probeFind has already
// identified as either EMPTY or DELETED, and updates count/growthLeft.
// growthLeft only decrements when idx was EMPTY: reusing a tombstone does
// not consume any of the capacity's remaining growth budget, since it was
// already spent when that slot was first filled.
func (t *Table[K, V]) placeAt(idx int, key K, value V, h2 uint8) {
	wasEmpty := t.ctrls[idx].isEmpty()
	t.slots[idx] = slot[K, V]{key: key, value: value}
	t.ctrls[idx] = occupiedCtrl(h2)
	t.count++
	if wasEmpty {
		t.growthLeft--
	}
}

// maybeRebuild doubles capacity when either the literal element-count
// threshold of spec.md §4.6 would be reached by one more insertion, or
// growthLeft has been exhausted by a long run of inserts into EMPTY slots
// whose keys were later deleted, leaving tombstones behind, without count
// ever approaching the threshold — a
// case the literal count-based trigger alone would miss, letting a probe
// run forever for want of any EMPTY slot. See DESIGN.md.
func (t *Table[K, V]) maybeRebuild() {
	threshold := int(float64(t.capacity) * t.loadFactor)
	if t.count+1 >= threshold || t.growthLeft <= 0 {
		t.rebuild(t.capacity * 2)
	}
}

// rebuild reinserts every occupied entry into a freshly allocated pair of
// arrays of the given capacity, dropping every tombstone in the process —
// the doubling rebuild of spec.md §4.6.
func (t *Table[K, V]) rebuild(newCapacity int) {
	oldCtrls, oldSlots := t.ctrls, t.slots
	t.allocateArrays(newCapacity)
	for i, c := range oldCtrls {
		if c.isOccupied() {
			t.uncheckedInsert(oldSlots[i].key, oldSlots[i].value)
		}
	}
}

// uncheckedInsert places a key known to be absent from the current
// arrays. Used only by rebuild and Resize, where every source entry is by
// construction distinct and the destination arrays start out empty.
func (t *Table[K, V]) uncheckedInsert(key K, value V) {
	idx, _ := t.probeFind(key)
	_, h2 := splitHash(t.hash(key))
	t.placeAt(idx, key, value, h2)
}

// Insert adds key/value only if key is absent. If key is already present
// the table is left unchanged; in debug builds the Reporter is notified
// with DuplicateInsert, otherwise it is absorbed locally (spec.md §7).
func (t *Table[K, V]) Insert(key K, value V) {
	t.mustBeActive()
	t.maybeRebuild()
	idx, found := t.probeFind(key)
	if found {
		if debug {
			t.reporter.Report(DuplicateInsert, "key already present: %v", key)
		}
		return
	}
	_, h2 := splitHash(t.hash(key))
	t.placeAt(idx, key, value, h2)
}

// InsertOrAssign adds key/value if key is absent, or overwrites the
// existing value if present.
func (t *Table[K, V]) InsertOrAssign(key K, value V) {
	t.mustBeActive()
	t.maybeRebuild()
	idx, found := t.probeFind(key)
	if found {
		t.slots[idx].value = value
		return
	}
	_, h2 := splitHash(t.hash(key))
	t.placeAt(idx, key, value, h2)
}

// Emplace is InsertOrAssign's unconditional-write twin: it always leaves
// key mapped to value, identical in observable effect to InsertOrAssign.
// Kept as a distinct method because spec.md §4.4 names it as its own
// operation, mirroring the reference source's separate emplace.
func (t *Table[K, V]) Emplace(key K, value V) {
	t.InsertOrAssign(key, value)
}

// TryEmplace inserts key/value only if key is absent and reports whether
// it did so. Unlike Insert it never notifies the Reporter on a duplicate;
// the caller's bool return is expected to carry that information instead.
func (t *Table[K, V]) TryEmplace(key K, value V) bool {
	t.mustBeActive()
	t.maybeRebuild()
	idx, found := t.probeFind(key)
	if found {
		return false
	}
	_, h2 := splitHash(t.hash(key))
	t.placeAt(idx, key, value, h2)
	return true
}

// Delete removes key if present, marking its slot DELETED, and reports
// whether anything was removed. Erase never needs a rebuild check: it can
// only shrink element_count.
func (t *Table[K, V]) Delete(key K) bool {
	t.mustBeActive()
	idx, found := t.probeFind(key)
	if !found {
		return false
	}
	t.slots[idx] = slot[K, V]{}
	t.ctrls[idx] = ctrlDeleted
	t.count--
	return true
}

// Extract removes key if present and returns its value alongside true; a
// false result carries a zero value.
func (t *Table[K, V]) Extract(key K) (V, bool) {
	t.mustBeActive()
	idx, found := t.probeFind(key)
	if !found {
		var zero V
		return zero, false
	}
	value := t.slots[idx].value
	t.slots[idx] = slot[K, V]{}
	t.ctrls[idx] = ctrlDeleted
	t.count--
	return value, true
}

// At returns the value mapped to key, or an *Error of kind
// PreconditionViolation if key is absent.
func (t *Table[K, V]) At(key K) (V, error) {
	t.mustBeActive()
	idx, found := t.probeFind(key)
	if !found {
		var zero V
		return zero, errKeyNotFound(key)
	}
	return t.slots[idx].value, nil
}

// GetOrZero returns the value mapped to key, or the zero value of V if
// key is absent — the Go rendering of the reference source's
// operator[], which default-constructs on a miss rather than failing.
func (t *Table[K, V]) GetOrZero(key K) V {
	v, err := t.At(key)
	if err != nil {
		var zero V
		return zero
	}
	return v
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	t.mustBeActive()
	_, found := t.probeFind(key)
	return found
}

// Count returns 1 if key is present and 0 otherwise, matching the
// reference source's count() (this map never holds duplicate keys).
func (t *Table[K, V]) Count(key K) int {
	if t.Contains(key) {
		return 1
	}
	return 0
}

// Find returns an Iterator positioned at key's slot, or a Done iterator
// if key is absent.
func (t *Table[K, V]) Find(key K) *Iterator[K, V] {
	t.mustBeActive()
	idx, found := t.probeFind(key)
	if !found {
		return t.End()
	}
	return newIterator(t, idx)
}

// Len returns the number of entries currently stored.
func (t *Table[K, V]) Len() int { return t.count }

// Empty reports whether the table holds zero entries.
func (t *Table[K, V]) Empty() bool { return t.count == 0 }

// MaxSize returns the largest capacity a Table of this key/value type
// could theoretically reach: Go slices are indexed by int, so this is
// simply the largest representable int.
func (t *Table[K, V]) MaxSize() int { return int(^uint(0) >> 1) }

// Clear discards every entry and resets capacity to the package default of
// 1024, even when the Table was built with WithCapacity. The hasher, load
// factor, allocator, and reporter stay as configured.
func (t *Table[K, V]) Clear() {
	t.mustBeActive()
	t.allocateArrays(defaultCapacity)
}

// ClearEntries discards every entry but preserves the current capacity,
// unlike Clear.
func (t *Table[K, V]) ClearEntries() {
	t.mustBeActive()
	t.allocateArrays(t.capacity)
}

// Reserve grows capacity to at least n, rebuilding in place. It is an
// error to reserve to a capacity not larger than the current one.
func (t *Table[K, V]) Reserve(n int) error {
	t.mustBeActive()
	if n <= t.capacity {
		return newError(PreconditionViolation, "reserve(%d) not larger than current capacity %d", n, t.capacity)
	}
	t.rebuild(n)
	return nil
}

// Resize sets capacity to exactly n, re-inserting existing entries in
// slot-scan order until either all of them have been placed or the new
// capacity's own load-factor ceiling is reached — the entries beyond that
// point are dropped. n must be positive.
func (t *Table[K, V]) Resize(n int) error {
	t.mustBeActive()
	if n <= 0 {
		return newError(PreconditionViolation, "resize to non-positive capacity %d", n)
	}
	oldCtrls, oldSlots := t.ctrls, t.slots
	t.allocateArrays(n)
	threshold := int(float64(n) * t.loadFactor)
	for i, c := range oldCtrls {
		if !c.isOccupied() {
			continue
		}
		if t.count >= threshold {
			t.reporter.Report(PreconditionViolation, "resize(%d) dropped entries exceeding the new load-factor ceiling", n)
			break
		}
		t.uncheckedInsert(oldSlots[i].key, oldSlots[i].value)
	}
	return nil
}

// Swap exchanges the entire contents — entries, capacity, and
// configuration — of t and other.
func (t *Table[K, V]) Swap(other *Table[K, V]) {
	t.mustBeActive()
	other.mustBeActive()
	*t, *other = *other, *t
}

// Merge inserts every entry of other into t, leaving entries already
// present in t untouched (the same absent-only semantics as Insert).
func (t *Table[K, V]) Merge(other *Table[K, V]) {
	t.mustBeActive()
	other.mustBeActive()
	for i, c := range other.ctrls {
		if c.isOccupied() {
			t.Insert(other.slots[i].key, other.slots[i].value)
		}
	}
}

// Close releases the slot and control arrays. Afterward every method that
// checks mustBeActive panics; Len, Empty, MaxSize, and Close do not.
func (t *Table[K, V]) Close() {
	t.ctrls = nil
	t.slots = nil
	t.capacity = 0
	t.count = 0
	t.growthLeft = 0
}

// All is a range-over-func iterator yielding every entry in control-byte
// scan order. Returning false from yield stops the scan early.
func (t *Table[K, V]) All(yield func(K, V) bool) {
	t.mustBeActive()
	for i, c := range t.ctrls {
		if c.isOccupied() {
			if !yield(t.slots[i].key, t.slots[i].value) {
				return
			}
		}
	}
}
