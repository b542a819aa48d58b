// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dframe wraps go-gg data tables for use with the dataview
// view types. A DFrame holds one table and provides selection,
// slicing, and splitting, plus conversion of the table into views
// (Tables, HeatMaps) and stacks of views. Every operation returns a
// new wrapper; the wrapped table is never mutated in place.
package dframe

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/aclements/go-dataview/views"
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// A DFrame is a logically immutable wrapper around a single
// *table.Table. Each column is described by a Dimension, in column
// order.
type DFrame struct {
	tab   *table.Table
	label string
	dims  []views.Dimension
}

// New returns a DFrame wrapping data with the given display label.
// data must be a *table.Table, a table.Grouping (which is flattened),
// or a slice of structs (converted with table.TableFromStructs).
// Anything else returns an *InvalidInputError. Dimensions default to
// the table's column names.
func New(data interface{}, label string) (*DFrame, error) {
	tab, err := toTable(data)
	if err != nil {
		return nil, err
	}
	return &DFrame{tab: tab, label: label, dims: views.Dims(tab.Columns()...)}, nil
}

// NewWithDims is like New, but supplies Dimension metadata for the
// columns. dims must name the table's columns, in column order.
func NewWithDims(data interface{}, label string, dims []views.Dimension) (*DFrame, error) {
	df, err := New(data, label)
	if err != nil {
		return nil, err
	}
	cols := df.tab.Columns()
	if len(dims) != len(cols) {
		return nil, fmt.Errorf("dframe: %d dimensions for %d columns", len(dims), len(cols))
	}
	for i, d := range dims {
		if d.Name != cols[i] {
			return nil, fmt.Errorf("dframe: dimension %q does not match column %q", d.Name, cols[i])
		}
	}
	df.dims = append([]views.Dimension(nil), dims...)
	return df, nil
}

func toTable(data interface{}) (*table.Table, error) {
	switch d := data.(type) {
	case *table.Table:
		return d, nil
	case table.Grouping:
		return flatten(d), nil
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Struct {
		return table.TableFromStructs(data), nil
	}
	return nil, &InvalidInputError{Data: data}
}

// flatten concatenates the groups of g into a single table,
// preserving group order.
func flatten(g table.Grouping) *table.Table {
	gids := g.Tables()
	switch len(gids) {
	case 0:
		return new(table.Table)
	case 1:
		return g.Table(gids[0])
	}
	b := new(table.Builder)
	for _, col := range g.Columns() {
		out := reflect.MakeSlice(reflect.TypeOf(g.Table(gids[0]).Column(col)), 0, 0)
		for _, gid := range gids {
			out = reflect.AppendSlice(out, reflect.ValueOf(g.Table(gid).Column(col)))
		}
		b.Add(col, out.Interface())
	}
	return b.Done()
}

// Label returns the wrapper's display label.
func (df *DFrame) Label() string { return df.label }

// Dims returns the wrapper's dimensions, one per column.
func (df *DFrame) Dims() []views.Dimension {
	return append([]views.Dimension(nil), df.dims...)
}

// Columns returns the wrapped table's column names.
func (df *DFrame) Columns() []string { return df.tab.Columns() }

// Len returns the number of rows.
func (df *DFrame) Len() int { return df.tab.Len() }

// Data returns the wrapped table. The caller must not modify its
// column slices; use Frame for an independent copy.
func (df *DFrame) Data() *table.Table { return df.tab }

// Frame returns an independent copy of the wrapped table. Mutating
// the returned table's columns does not affect the wrapper.
func (df *DFrame) Frame() *table.Table {
	b := new(table.Builder)
	for _, col := range df.tab.Columns() {
		src := reflect.ValueOf(df.tab.Column(col))
		dst := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		reflect.Copy(dst, src)
		b.Add(col, dst.Interface())
	}
	return b.Done()
}

func (df *DFrame) dimOf(name string) (views.Dimension, bool) {
	for _, d := range df.dims {
		if d.Name == name {
			return d, true
		}
	}
	return views.Dimension{}, false
}

func (df *DFrame) dimsOf(names []string) []views.Dimension {
	ds := make([]views.Dimension, len(names))
	for i, n := range names {
		d, ok := df.dimOf(n)
		if !ok {
			d = views.Dimension{Name: n}
		}
		ds[i] = d
	}
	return ds
}

func (df *DFrame) clone(tab *table.Table, dims []views.Dimension) *DFrame {
	return &DFrame{tab: tab, label: df.label, dims: dims}
}

// A Range selects rows whose value falls strictly between Lo and Hi.
// It applies only to numeric columns.
type Range struct {
	Lo, Hi float64
}

// Select returns a new wrapper keeping only the rows that satisfy
// every criterion in where. A Range criterion keeps rows strictly
// between its bounds; any other value keeps rows equal to it.
// Criteria are independent row filters, so their order does not
// matter. A criterion naming an unknown dimension returns a
// *DimensionError.
func (df *DFrame) Select(where map[string]interface{}) (*DFrame, error) {
	names := make([]string, 0, len(where))
	for name := range where {
		names = append(names, name)
	}
	sort.Strings(names)

	keep := make([]int, df.tab.Len())
	for i := range keep {
		keep[i] = i
	}
	for _, name := range names {
		col := df.tab.Column(name)
		if col == nil {
			return nil, &DimensionError{Dim: name}
		}
		rv := reflect.ValueOf(col)
		var next []int
		if r, ok := where[name].(Range); ok {
			for _, i := range keep {
				f, ok := floatValue(rv.Index(i).Interface())
				if !ok {
					return nil, fmt.Errorf("dframe: dimension %q is not numeric; cannot select a Range", name)
				}
				if r.Lo < f && f < r.Hi {
					next = append(next, i)
				}
			}
		} else {
			crit := where[name]
			for _, i := range keep {
				if equalValue(rv.Index(i).Interface(), crit) {
					next = append(next, i)
				}
			}
		}
		keep = next
	}
	return df.clone(df.take(keep), df.Dims()), nil
}

// take builds a new table from the given row indexes.
func (df *DFrame) take(rows []int) *table.Table {
	b := new(table.Builder)
	for _, col := range df.tab.Columns() {
		b.Add(col, slice.Select(df.tab.Column(col), rows))
	}
	return b.Done()
}

// At slices df by a tuple of coordinate values, one per dimension in
// order. An empty key returns df itself. A key whose length does not
// match the number of dimensions returns a *views.KeyArityError.
func (df *DFrame) At(key ...interface{}) (*DFrame, error) {
	if len(key) == 0 {
		return df, nil
	}
	if len(key) != len(df.dims) {
		return nil, &views.KeyArityError{Key: views.Key(key), Want: len(df.dims)}
	}
	where := make(map[string]interface{}, len(key))
	for i, d := range df.dims {
		where[d.Name] = key[i]
	}
	return df.Select(where)
}

// Apply invokes a named table operation on the wrapped table and
// returns a new wrapper over the result. The operation must be one
// of a closed allow-list:
//
//	"sort" col...        sort rows by the named columns
//	"head" n             keep the first n rows
//	"tail" n             keep the last n rows
//	"remove" col         drop a column
//	"rename" old new     rename a column
//
// Anything else returns an *OpError. Apply is the escape hatch for
// table operations not otherwise exposed.
func (df *DFrame) Apply(op string, args ...interface{}) (*DFrame, error) {
	switch op {
	case "sort":
		cols, err := stringArgs(op, args)
		if err != nil {
			return nil, err
		}
		if len(cols) == 0 {
			return nil, &OpError{Op: op, Msg: "no columns given"}
		}
		for _, c := range cols {
			if df.tab.Column(c) == nil {
				return nil, &DimensionError{Dim: c}
			}
		}
		t := table.SortBy(df.tab, cols...).Table(table.RootGroupID)
		return df.clone(t, df.Dims()), nil

	case "head", "tail":
		if len(args) != 1 {
			return nil, &OpError{Op: op, Msg: "want one int argument"}
		}
		n, ok := args[0].(int)
		if !ok {
			return nil, &OpError{Op: op, Msg: fmt.Sprintf("want int, got %T", args[0])}
		}
		if n < 0 {
			n = 0
		}
		if n > df.tab.Len() {
			n = df.tab.Len()
		}
		rows := make([]int, n)
		for i := range rows {
			if op == "head" {
				rows[i] = i
			} else {
				rows[i] = df.tab.Len() - n + i
			}
		}
		return df.clone(df.take(rows), df.Dims()), nil

	case "remove":
		cols, err := stringArgs(op, args)
		if err != nil {
			return nil, err
		}
		if len(cols) != 1 {
			return nil, &OpError{Op: op, Msg: "want one column argument"}
		}
		if df.tab.Column(cols[0]) == nil {
			return nil, &DimensionError{Dim: cols[0]}
		}
		t := table.Remove(df.tab, cols[0]).Table(table.RootGroupID)
		var dims []views.Dimension
		for _, d := range df.dims {
			if d.Name != cols[0] {
				dims = append(dims, d)
			}
		}
		return df.clone(t, dims), nil

	case "rename":
		cols, err := stringArgs(op, args)
		if err != nil {
			return nil, err
		}
		if len(cols) != 2 {
			return nil, &OpError{Op: op, Msg: "want old and new column arguments"}
		}
		if df.tab.Column(cols[0]) == nil {
			return nil, &DimensionError{Dim: cols[0]}
		}
		t := table.Rename(df.tab, cols[0], cols[1]).Table(table.RootGroupID)
		dims := df.Dims()
		for i := range dims {
			if dims[i].Name == cols[0] {
				dims[i].Name = cols[1]
			}
		}
		return df.clone(t, dims), nil
	}
	return nil, &OpError{Op: op}
}

func stringArgs(op string, args []interface{}) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		s, ok := a.(string)
		if !ok {
			return nil, &OpError{Op: op, Msg: fmt.Sprintf("argument %d: want string, got %T", i, a)}
		}
		out[i] = s
	}
	return out, nil
}

// Split groups the wrapped table by dims, producing a Stack keyed by
// each group's dimension-value tuple. Each stack entry wraps the
// remaining columns and carries their Dimension metadata.
func (df *DFrame) Split(dims ...string) (*Stack, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("dframe: Split requires at least one dimension")
	}
	isSplit := make(map[string]bool, len(dims))
	for _, d := range dims {
		if df.tab.Column(d) == nil {
			return nil, &DimensionError{Dim: d}
		}
		isSplit[d] = true
	}

	st := NewStack(df.dimsOf(dims))
	g := table.GroupBy(df.tab, dims...)
	for _, gid := range g.Tables() {
		sub := g.Table(gid)

		key := make(views.Key, len(dims))
		for j, d := range dims {
			key[j] = reflect.ValueOf(sub.Column(d)).Index(0).Interface()
		}

		b := new(table.Builder)
		var kept []views.Dimension
		for _, d := range df.dims {
			if isSplit[d.Name] {
				continue
			}
			b.Add(d.Name, sub.Column(d.Name))
			kept = append(kept, d)
		}
		if err := st.Put(key, df.clone(b.Done(), kept)); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// floatValue converts a scalar to float64 if it is of a numeric kind.
func floatValue(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func equalValue(a, b interface{}) bool {
	if fa, ok := floatValue(a); ok {
		fb, ok := floatValue(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// Floats converts a column to []float64. It returns an error if the
// column's elements are not of a numeric kind.
func Floats(col table.Slice) ([]float64, error) {
	rv := reflect.ValueOf(col)
	out := make([]float64, rv.Len())
	for i := range out {
		f, ok := floatValue(rv.Index(i).Interface())
		if !ok {
			return nil, fmt.Errorf("dframe: column of %s is not numeric", rv.Type().Elem())
		}
		out[i] = f
	}
	return out, nil
}
