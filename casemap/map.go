/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package casemap

// entry is one bucket slot. Buckets are a singly-linked list so that
// deleting the entry currently being visited during an Iterate callback is
// safe: the iterator only ever dereferences a pointer it already holds.
type entry[V any] struct {
	key  string // original, non-folded key, returned by Keys/Iterate
	val  V
	next *entry[V]
}

// Map is a generic, case-folding bucketed hash map. Keys are compared
// using Mapping's fold rules instead of plain ==, which rules out
// sync.Map/map[string]V as a backing store — both require byte-identical
// keys. The original (non-folded) key is preserved alongside the value so
// callers can recover the casing a server actually sent.
type Map[V any] struct {
	mapping Mapping
	buckets []*entry[V]
	size    int
}

// NewMap creates an empty Map using the given fold mapping.
func NewMap[V any](mapping Mapping) *Map[V] {
	return &Map[V]{
		mapping: mapping,
		buckets: make([]*entry[V], 16),
	}
}

// Mapping returns the fold mapping this Map was created with.
func (m *Map[V]) Mapping() Mapping {
	return m.mapping
}

// Len returns the number of entries currently stored.
func (m *Map[V]) Len() int {
	return m.size
}

func (m *Map[V]) bucketIndex(key string) int {
	return int(m.mapping.Hash(key) % uint64(len(m.buckets)))
}

// Get returns the value stored under key (compared case-insensitively per
// the Map's Mapping) and whether it was found.
func (m *Map[V]) Get(key string) (V, bool) {
	idx := m.bucketIndex(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if m.mapping.Equal(e.key, key) {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

// Set stores val under key, replacing any existing entry that folds equal
// to key (the original casing of the existing entry is replaced too, so
// the most recently observed casing wins — matching how IRC servers
// re-announce a user's current nick casing on every message from them).
func (m *Map[V]) Set(key string, val V) {
	if float64(m.size+1) > float64(len(m.buckets))*0.75 {
		m.grow()
	}

	idx := m.bucketIndex(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if m.mapping.Equal(e.key, key) {
			e.key = key
			e.val = val
			return
		}
	}

	m.buckets[idx] = &entry[V]{key: key, val: val, next: m.buckets[idx]}
	m.size++
}

// Delete removes the entry whose key folds equal to key, if any.
func (m *Map[V]) Delete(key string) {
	idx := m.bucketIndex(key)

	var prev *entry[V]
	for e := m.buckets[idx]; e != nil; e = e.next {
		if m.mapping.Equal(e.key, key) {
			if prev == nil {
				m.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			m.size--
			return
		}
		prev = e
	}
}

func (m *Map[V]) grow() {
	old := m.buckets
	m.buckets = make([]*entry[V], len(old)*2)

	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			idx := m.bucketIndex(e.key)
			e.next = m.buckets[idx]
			m.buckets[idx] = e
			e = next
		}
	}
}

// Keys returns every stored key in its original (non-folded) casing, in
// unspecified order.
func (m *Map[V]) Keys() []string {
	out := make([]string, 0, m.size)
	m.Iterate(func(key string, _ V) bool {
		out = append(out, key)
		return true
	})
	return out
}

// Iterate calls fn for every entry. fn may call Delete(key) on the entry
// it is currently visiting — Iterate snapshots the next pointer before
// invoking fn, so deleting the current entry never skips or revisits a
// sibling. Iterate stops early if fn returns false.
func (m *Map[V]) Iterate(fn func(key string, val V) bool) {
	for _, head := range m.buckets {
		e := head
		for e != nil {
			next := e.next
			if !fn(e.key, e.val) {
				return
			}
			e = next
		}
	}
}
