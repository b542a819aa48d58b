// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"fmt"
	"math"
	"reflect"
)

// A Table is an ordered mapping from Keys to values. It places no
// constraint on key arity; it is the most general view type.
type Table struct {
	label string
	value Dimension
	dims  []Dimension

	keys []Key
	vals map[string]interface{}
}

// NewTable returns a Table over items with the given label, value
// dimension, and key dimensions. Items are kept in order; if two
// items share a key, the later value wins but the key keeps its
// first position.
func NewTable(items []Item, label string, value Dimension, dims []Dimension) *Table {
	t := &Table{
		label: label,
		value: value,
		dims:  append([]Dimension(nil), dims...),
		vals:  make(map[string]interface{}, len(items)),
	}
	for _, it := range items {
		c := it.Key.Canon()
		if _, ok := t.vals[c]; !ok {
			t.keys = append(t.keys, it.Key)
		}
		t.vals[c] = it.Value
	}
	return t
}

// Label returns the table's display label.
func (t *Table) Label() string { return t.label }

// Value returns the dimension of the table's values.
func (t *Table) Value() Dimension { return t.value }

// Dims returns the table's key dimensions.
func (t *Table) Dims() []Dimension {
	return append([]Dimension(nil), t.dims...)
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns the table's keys in insertion order.
func (t *Table) Keys() []Key {
	return append([]Key(nil), t.keys...)
}

// At returns the value stored under key.
func (t *Table) At(key Key) (interface{}, bool) {
	v, ok := t.vals[key.Canon()]
	return v, ok
}

// Items returns the table's entries in insertion order.
func (t *Table) Items() []Item {
	items := make([]Item, len(t.keys))
	for i, k := range t.keys {
		items[i] = Item{k, t.vals[k.Canon()]}
	}
	return items
}

// A HeatMap is a Table constrained to exactly one or two key
// dimensions, so its entries can be laid out on a grid.
type HeatMap struct {
	Table
}

// NewHeatMap is like NewTable, but returns an error unless dims has
// exactly one or two entries. It never truncates the dimension list.
func NewHeatMap(items []Item, label string, value Dimension, dims []Dimension) (*HeatMap, error) {
	if len(dims) < 1 || len(dims) > 2 {
		return nil, fmt.Errorf("heat map supports one or two dimensions; got %d", len(dims))
	}
	return &HeatMap{*NewTable(items, label, value, dims)}, nil
}

// Grid returns the heat map as a dense grid. xs and ys hold the
// distinct first and second key coordinates in order of first
// appearance, and vals is indexed vals[yi][xi]. Missing cells and
// non-numeric values are NaN. A one-dimensional heat map has a
// single row with a nil y coordinate.
func (h *HeatMap) Grid() (xs, ys []interface{}, vals [][]float64) {
	xi := make(map[string]int)
	yi := make(map[string]int)
	coord := func(k Key, i int) interface{} {
		if i < len(k) {
			return k[i]
		}
		return nil
	}
	for _, k := range h.keys {
		x, y := coord(k, 0), coord(k, 1)
		if _, ok := xi[fmt.Sprint(x)]; !ok {
			xi[fmt.Sprint(x)] = len(xs)
			xs = append(xs, x)
		}
		if _, ok := yi[fmt.Sprint(y)]; !ok {
			yi[fmt.Sprint(y)] = len(ys)
			ys = append(ys, y)
		}
	}
	vals = make([][]float64, len(ys))
	for i := range vals {
		row := make([]float64, len(xs))
		for j := range row {
			row[j] = math.NaN()
		}
		vals[i] = row
	}
	for _, k := range h.keys {
		v := h.vals[k.Canon()]
		x, y := coord(k, 0), coord(k, 1)
		vals[yi[fmt.Sprint(y)]][xi[fmt.Sprint(x)]] = toFloat(v)
	}
	return xs, ys, vals
}

func toFloat(v interface{}) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return math.NaN()
}
