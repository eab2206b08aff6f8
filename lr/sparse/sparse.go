/*
Package sparse implements a simple type for sparse integer matrices.
It is used for parser tables (LL(1) prediction tables, LR ACTION/GOTO tables).
Every entry in the table is either a single int32 or a pair (int32,int32).
A pair denotes a cell which has been written twice, i.e. a table conflict.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept in row-major order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	a, b     int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// search returns the index of the first triplet not left of (i,j).
func (m *IntMatrix) search(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		t := m.values[k]
		return t.row > i || t.row == i && t.col >= j
	})
}

func (m *IntMatrix) at(i, j int) (int, bool) {
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].row == i && m.values[k].col == j {
		return k, true
	}
	return k, false
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if k, ok := m.at(i, j); ok {
		return m.values[k].a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue)
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if k, ok := m.at(i, j); ok {
		return m.values[k].a, m.values[k].b
	}
	return m.nullval, m.nullval
}

// IsSet is true if position (i,j) holds a value.
func (m *IntMatrix) IsSet(i, j int) bool {
	_, ok := m.at(i, j)
	return ok
}

// Set a value in the matrix at position (i,j), overwriting any previous values.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	if k, ok := m.at(i, j); ok {
		m.values[k].a, m.values[k].b = value, m.nullval
		return m
	}
	m.insert(i, j, value)
	return m
}

// Add a value in the matrix at position (i,j). If the position is already
// occupied, value becomes the secondary value of the position.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	k, ok := m.at(i, j)
	if !ok {
		m.insert(i, j, value)
		return m
	}
	if m.values[k].a == m.nullval {
		m.values[k].a = value
	} else {
		m.values[k].b = value // a full entry keeps the latest secondary value
	}
	return m
}

func (m *IntMatrix) insert(i, j int, value int32) {
	if i >= m.rowcnt {
		m.rowcnt = i + 1
	}
	if j >= m.colcnt {
		m.colcnt = j + 1
	}
	at := m.search(i, j)
	t := triplet{row: i, col: j, a: value, b: m.nullval}
	m.values = append(m.values, t)
	copy(m.values[at+1:], m.values[at:])
	m.values[at] = t
}

// Each calls f for every position holding a value, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, a, b int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.a, t.b)
	}
}

// Row returns the set column indices of row i, in ascending order.
func (m *IntMatrix) Row(i int) []int {
	var cols []int
	for k := m.search(i, 0); k < len(m.values) && m.values[k].row == i; k++ {
		cols = append(cols, m.values[k].col)
	}
	return cols
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=[%d,%d]", t.row, t.col, t.a, t.b)
}
