package featmatrix

import (
	"iter"
	"slices"
)

// Matrix is the immutable set of feature groups a run enumerates.
//
// Build one with [NewMatrix] at program entry and pass it explicitly.
// Nothing mutates a Matrix after construction.
type Matrix struct {
	groups []FeatureGroup
}

// NewMatrix creates a Matrix from the declared groups.
// Each group is copied and extended with one empty token meaning
// "feature group not enabled for this run".
//
// With no groups the matrix holds exactly one combination, the empty one.
func NewMatrix(groups ...FeatureGroup) *Matrix {
	extended := make([]FeatureGroup, 0, len(groups))
	for _, g := range groups {
		eg := make(FeatureGroup, 0, len(g)+1)
		eg = append(eg, g...)
		eg = append(eg, "")
		extended = append(extended, eg)
	}
	return &Matrix{groups: extended}
}

// Groups returns a copy of the extended groups.
func (m *Matrix) Groups() []FeatureGroup {
	out := make([]FeatureGroup, len(m.groups))
	for i, g := range m.groups {
		out[i] = slices.Clone(g)
	}
	return out
}

// Len returns the number of combinations: the product of the extended group sizes.
func (m *Matrix) Len() int {
	n := 1
	for _, g := range m.groups {
		n *= len(g)
	}
	return n
}

// Iter returns a new iterator positioned before the first combination.
func (m *Matrix) Iter() *Iterator {
	return &Iterator{m: m}
}

// All yields every combination with its index, in odometer order.
func (m *Matrix) All() iter.Seq2[int, Combination] {
	return func(yield func(int, Combination) bool) {
		it := m.Iter()
		for it.Next() {
			if !yield(it.Index(), it.Combination()) {
				return
			}
		}
	}
}

// Combinations materializes every combination. Prefer [Matrix.Iter] for runs.
func (m *Matrix) Combinations() []Combination {
	out := make([]Combination, 0, m.Len())
	for _, c := range m.All() {
		out = append(out, c)
	}
	return out
}

// Iterator walks the cartesian product of a [Matrix] as a mixed-radix counter.
// The last-declared group cycles fastest.
type Iterator struct {
	m    *Matrix
	idx  []int // current digit per group; nil before the first Next
	n    int
	done bool
}

// Next advances to the next combination and reports whether there is one.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if it.idx == nil {
		it.idx = make([]int, len(it.m.groups))
		return true
	}
	for pos := len(it.idx) - 1; pos >= 0; pos-- {
		it.idx[pos]++
		if it.idx[pos] < len(it.m.groups[pos]) {
			it.n++
			return true
		}
		it.idx[pos] = 0
	}
	// Every digit wrapped around.
	it.done = true
	return false
}

// Combination returns the current combination. It is only valid after
// Next has returned true.
func (it *Iterator) Combination() Combination {
	c := make(Combination, len(it.idx))
	for pos, d := range it.idx {
		c[pos] = it.m.groups[pos][d]
	}
	return c
}

// Index returns the zero-based position of the current combination.
func (it *Iterator) Index() int {
	return it.n
}

// Reset rewinds the iterator to before the first combination.
func (it *Iterator) Reset() {
	it.idx = nil
	it.n = 0
	it.done = false
}
