// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package views provides the typed view containers that the dataview
// packages convert tabular data into: keyed Tables, one- and
// two-dimensional HeatMaps, and ordered Stacks of views representing
// parameter sweeps or animated sequences.
//
// Views are immutable by convention: constructors copy their inputs
// and accessors return copies of internal state.
package views

import (
	"bytes"
	"fmt"
)

// A Dimension is a named, labeled axis of variation, usually
// corresponding to a single column of tabular data.
type Dimension struct {
	// Name identifies the dimension. It must be unique within a
	// view or a wrapper.
	Name string

	// Unit optionally names the unit of the dimension's values,
	// such as "ns/op".
	Unit string
}

func (d Dimension) String() string {
	if d.Unit == "" {
		return d.Name
	}
	return d.Name + " (" + d.Unit + ")"
}

// Dims constructs unit-less Dimensions from column names.
func Dims(names ...string) []Dimension {
	ds := make([]Dimension, len(names))
	for i, n := range names {
		ds[i] = Dimension{Name: n}
	}
	return ds
}

// A Key is an ordered tuple of coordinate values, one value per
// dimension of the container it indexes.
type Key []interface{}

// String returns the display rendering of k. A single-element key
// renders as the bare value; longer keys render parenthesized.
func (k Key) String() string {
	if len(k) == 1 {
		return fmt.Sprint(k[0])
	}
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, v := range k {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprint(&buf, v)
	}
	buf.WriteByte(')')
	return buf.String()
}

// Canon returns the canonical encoding of k used as the identity by
// ordered containers. Unlike String, it is injective: keys of
// different arity, element types, or element values never share an
// encoding, so Key{1} and Key{"1"} index distinct slots.
func (k Key) Canon() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d;", len(k))
	for _, v := range k {
		s := fmt.Sprint(v)
		fmt.Fprintf(&buf, "%T %d %s;", v, len(s), s)
	}
	return buf.String()
}

// An Item is one keyed cell of a view.
type Item struct {
	Key   Key
	Value interface{}
}

// A View is a container of keyed values produced from tabular data.
// It is implemented by *Table, *HeatMap, and *dframe.DFrame.
type View interface {
	// Label returns the view's display label.
	Label() string

	// Dims returns the view's key dimensions.
	Dims() []Dimension
}

// A KeyArityError reports a key whose length does not match the
// number of dimensions of the container it was used with.
type KeyArityError struct {
	Key  Key
	Want int
}

func (e *KeyArityError) Error() string {
	return fmt.Sprintf("key %v has %d values; want %d", e.Key, len(e.Key), e.Want)
}
