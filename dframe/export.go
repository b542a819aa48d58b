// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dframe

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-dataview/views"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// A ReduceFunc aggregates a collection of same-keyed values into one.
type ReduceFunc func([]float64) float64

// Built-in reductions.
var (
	ReduceSum     ReduceFunc = vec.Sum
	ReduceMean    ReduceFunc = stats.Mean
	ReduceGeoMean ReduceFunc = stats.GeoMean
	ReduceMin     ReduceFunc = func(xs []float64) float64 { lo, _ := stats.Bounds(xs); return lo }
	ReduceMax     ReduceFunc = func(xs []float64) float64 { _, hi := stats.Bounds(xs); return hi }
)

// Export controls the conversion of a DFrame into a view or a stack
// of views. The zero value selects every row keyed by row position.
type Export struct {
	// Indices selects rows by position. Empty means all rows.
	// Ignored when Reduce is set.
	Indices []int

	// Reduce, if set, aggregates the value column's entries per
	// distinct key instead of selecting rows.
	Reduce ReduceFunc

	// Dims names the dimensions that become the key axes of the
	// produced view.
	Dims []string

	// StackDims names the dimensions to split into a stack of
	// views instead of a single view.
	StackDims []string
}

// Table converts the frame into a single views.Table whose values
// come from the value dimension. StackDims must be empty; use
// TableStack to split into a stack.
func (df *DFrame) Table(value string, e Export) (*views.Table, error) {
	if len(e.StackDims) > 0 {
		return nil, fmt.Errorf("dframe: stack dimensions given; use TableStack")
	}
	v, _, err := df.export(value, e, buildTable)
	if err != nil {
		return nil, err
	}
	return v.(*views.Table), nil
}

// TableStack converts the frame into a stack of views.Tables, one
// per combination of StackDims values.
func (df *DFrame) TableStack(value string, e Export) (*views.Stack, error) {
	if len(e.StackDims) == 0 {
		return nil, fmt.Errorf("dframe: no stack dimensions given; use Table")
	}
	_, s, err := df.export(value, e, buildTable)
	return s, err
}

// HeatMap converts the frame into a views.HeatMap. e.Dims must have
// exactly one or two entries; more dimensions are an error, never a
// silent truncation. Supply a single index or a Reduce so each grid
// cell gets one value.
func (df *DFrame) HeatMap(value string, e Export) (*views.HeatMap, error) {
	if len(e.StackDims) > 0 {
		return nil, fmt.Errorf("dframe: stack dimensions given; use HeatMapStack")
	}
	if err := checkHeatMapDims(e.Dims); err != nil {
		return nil, err
	}
	v, _, err := df.export(value, e, buildHeatMap)
	if err != nil {
		return nil, err
	}
	return v.(*views.HeatMap), nil
}

// HeatMapStack converts the frame into a stack of views.HeatMaps,
// one per combination of StackDims values.
func (df *DFrame) HeatMapStack(value string, e Export) (*views.Stack, error) {
	if len(e.StackDims) == 0 {
		return nil, fmt.Errorf("dframe: no stack dimensions given; use HeatMap")
	}
	if err := checkHeatMapDims(e.Dims); err != nil {
		return nil, err
	}
	_, s, err := df.export(value, e, buildHeatMap)
	return s, err
}

func checkHeatMapDims(dims []string) error {
	if len(dims) < 1 || len(dims) > 2 {
		return fmt.Errorf("dframe: heat map supports one or two dimensions; got %d", len(dims))
	}
	return nil
}

// A viewBuilder constructs the target view from the exported items.
type viewBuilder func(items []views.Item, label string, value views.Dimension, dims []views.Dimension) (views.View, error)

func buildTable(items []views.Item, label string, value views.Dimension, dims []views.Dimension) (views.View, error) {
	return views.NewTable(items, label, value, dims), nil
}

func buildHeatMap(items []views.Item, label string, value views.Dimension, dims []views.Dimension) (views.View, error) {
	return views.NewHeatMap(items, label, value, dims)
}

// export is the core conversion from the wrapped table to a view or
// stack of views. It restricts the table to the selected dimensions,
// splits it along e.StackDims (or treats it as one group), and
// builds one view per group: either by reducing the value column per
// distinct key, or by selecting rows by position. Exactly one of the
// returned view and stack is non-nil.
func (df *DFrame) export(value string, e Export, build viewBuilder) (views.View, *views.Stack, error) {
	selected := append([]string{value}, e.Dims...)
	selected = append(selected, e.StackDims...)
	for _, d := range selected {
		if df.tab.Column(d) == nil {
			return nil, nil, &DimensionError{Dim: d}
		}
	}

	// Drop unselected columns so they cannot leak into the output.
	b := new(table.Builder)
	seen := make(map[string]bool)
	for _, d := range selected {
		if !seen[d] {
			b.Add(d, df.tab.Column(d))
			seen[d] = true
		}
	}
	work := b.Done()

	type group struct {
		key views.Key
		tab *table.Table
	}
	var groups []group
	var stack *views.Stack
	if len(e.StackDims) > 0 {
		stack = views.NewStack(df.dimsOf(e.StackDims))
		g := table.GroupBy(work, e.StackDims...)
		for _, gid := range g.Tables() {
			sub := g.Table(gid)
			key := make(views.Key, len(e.StackDims))
			for j, d := range e.StackDims {
				key[j] = reflect.ValueOf(sub.Column(d)).Index(0).Interface()
			}
			groups = append(groups, group{key, sub})
		}
	} else {
		groups = []group{{nil, work}}
	}

	var single views.View
	for _, grp := range groups {
		items, dims, err := df.exportGroup(grp.tab, value, e)
		if err != nil {
			return nil, nil, err
		}
		valueDim, _ := df.dimOf(value)
		v, err := build(items, df.label, valueDim, dims)
		if err != nil {
			return nil, nil, err
		}
		if stack != nil {
			if err := stack.Put(grp.key, v); err != nil {
				return nil, nil, err
			}
		} else {
			single = v
		}
	}
	return single, stack, nil
}

// exportGroup builds the ordered key/value items for one group, plus
// the effective key dimensions of the resulting view.
func (df *DFrame) exportGroup(tab *table.Table, value string, e Export) ([]views.Item, []views.Dimension, error) {
	dims := df.dimsOf(e.Dims)

	keyCols := make([]reflect.Value, len(e.Dims))
	for j, d := range e.Dims {
		keyCols[j] = reflect.ValueOf(tab.Column(d))
	}
	rowKey := func(i int) views.Key {
		key := make(views.Key, len(keyCols))
		for j, col := range keyCols {
			key[j] = col.Index(i).Interface()
		}
		return key
	}

	if e.Reduce != nil {
		// Collect the value entries per distinct key, in row
		// order, then reduce each collection to a scalar.
		vals, err := Floats(tab.Column(value))
		if err != nil {
			return nil, nil, err
		}
		var order []string
		keyOf := make(map[string]views.Key)
		acc := make(map[string][]float64)
		for i := 0; i < tab.Len(); i++ {
			var key views.Key
			if len(e.Dims) > 0 {
				key = rowKey(i)
			} else {
				key = views.Key{value}
			}
			c := key.Canon()
			if _, ok := acc[c]; !ok {
				order = append(order, c)
				keyOf[c] = key
			}
			acc[c] = append(acc[c], vals[i])
		}
		items := make([]views.Item, len(order))
		for i, c := range order {
			items[i] = views.Item{Key: keyOf[c], Value: e.Reduce(acc[c])}
		}
		return items, dims, nil
	}

	// Row selection. A single explicit index cannot collide, so its
	// key is just the view-dimension tuple. Otherwise every row gains
	// a leading row-position component to keep duplicate-keyed rows
	// from silently dropping each other.
	indices := e.Indices
	addIndex := len(indices) != 1
	if len(indices) == 0 {
		indices = make([]int, tab.Len())
		for i := range indices {
			indices[i] = i
		}
	}
	if addIndex || len(e.Dims) == 0 {
		dims = append([]views.Dimension{{Name: "Index"}}, dims...)
		addIndex = true
	}

	valCol := reflect.ValueOf(tab.Column(value))
	items := make([]views.Item, 0, len(indices))
	for _, ind := range indices {
		if ind < 0 || ind >= tab.Len() {
			return nil, nil, fmt.Errorf("dframe: row index %d out of range [0, %d)", ind, tab.Len())
		}
		key := rowKey(ind)
		if addIndex {
			key = append(views.Key{ind}, key...)
		}
		items = append(items, views.Item{Key: key, Value: valCol.Index(ind).Interface()})
	}
	return items, dims, nil
}
