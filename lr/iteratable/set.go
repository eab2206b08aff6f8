package iteratable

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Hasher computes a hash key for a set element. Elements which are equal
// with respect to the set's comparator must have identical hash keys.
type Hasher func(interface{}) string

// Set is an ordered set of elements, ordered by a comparator.
type Set struct {
	tree   *treeset.Set
	cmp    utils.Comparator
	hasher Hasher
	index  map[string]int // hash key -> number of elements with this key
}

// NewSet creates an empty set with a comparator. hasher may be nil.
func NewSet(cmp utils.Comparator, hasher Hasher) *Set {
	s := &Set{
		tree:   treeset.NewWith(cmp),
		cmp:    cmp,
		hasher: hasher,
	}
	if hasher != nil {
		s.index = make(map[string]int)
	}
	return s
}

// Comparator returns the comparator of s.
func (s *Set) Comparator() utils.Comparator {
	return s.cmp
}

// Add adds items to s. Items already present are ignored.
// Returns the number of items actually inserted.
func (s *Set) Add(items ...interface{}) int {
	cnt := 0
	for _, item := range items {
		if s.Contains(item) {
			continue
		}
		s.tree.Add(item)
		if s.hasher != nil {
			s.index[s.hasher(item)]++
		}
		cnt++
	}
	return cnt
}

// Remove deletes items from s.
func (s *Set) Remove(items ...interface{}) {
	for _, item := range items {
		if !s.Contains(item) {
			continue
		}
		s.tree.Remove(item)
		if s.hasher != nil {
			h := s.hasher(item)
			if s.index[h]--; s.index[h] <= 0 {
				delete(s.index, h)
			}
		}
	}
}

// Contains checks membership of item.
func (s *Set) Contains(item interface{}) bool {
	if s.hasher != nil {
		if _, ok := s.index[s.hasher(item)]; !ok {
			return false
		}
	}
	return s.tree.Contains(item)
}

// Size returns the number of elements in s.
func (s *Set) Size() int {
	return s.tree.Size()
}

// Empty is true for sets without elements.
func (s *Set) Empty() bool {
	return s.tree.Empty()
}

// Values returns the elements of s in order.
func (s *Set) Values() []interface{} {
	return s.tree.Values()
}

// First returns the smallest element of s, or nil.
func (s *Set) First() interface{} {
	it := s.tree.Iterator()
	if it.First() {
		return it.Value()
	}
	return nil
}

// Nth returns the n-th element (0-based) in order, or nil.
func (s *Set) Nth(n int) interface{} {
	it := s.tree.Iterator()
	for i := 0; it.Next(); i++ {
		if i == n {
			return it.Value()
		}
	}
	return nil
}

// Each calls f for every element in order. Iteration stops when f
// returns false.
func (s *Set) Each(f func(interface{}) bool) {
	it := s.tree.Iterator()
	for it.Next() {
		if !f(it.Value()) {
			return
		}
	}
}

// Copy returns a shallow copy of s.
func (s *Set) Copy() *Set {
	c := NewSet(s.cmp, s.hasher)
	c.Add(s.Values()...)
	return c
}

// Union adds all elements of other to s. Returns s.
func (s *Set) Union(other *Set) *Set {
	if other != nil {
		s.Add(other.Values()...)
	}
	return s
}

// Difference removes all elements of other from s. Returns s.
func (s *Set) Difference(other *Set) *Set {
	if other != nil {
		s.Remove(other.Values()...)
	}
	return s
}

// Subset reduces s to the elements satisfying predicate. Returns s.
func (s *Set) Subset(predicate func(interface{}) bool) *Set {
	var drop []interface{}
	s.Each(func(x interface{}) bool {
		if !predicate(x) {
			drop = append(drop, x)
		}
		return true
	})
	s.Remove(drop...)
	return s
}

// Equals is true if s and other contain the same elements.
func (s *Set) Equals(other *Set) bool {
	return s.Compare(other) == 0
}

// Compare orders sets lexicographically by their ordered elements, using
// the comparator of s. A proper prefix sorts first.
func (s *Set) Compare(other *Set) int {
	if other == nil {
		return 1
	}
	a, b := s.tree.Iterator(), other.tree.Iterator()
	for {
		na, nb := a.Next(), b.Next()
		switch {
		case !na && !nb:
			return 0
		case !na:
			return -1
		case !nb:
			return 1
		}
		if c := s.cmp(a.Value(), b.Value()); c != 0 {
			return c
		}
	}
}
