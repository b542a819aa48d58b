// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dframe

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-dataview/views"
	"github.com/aclements/go-gg/table"
)

// A Stack is an ordered mapping from Keys to DFrames, representing a
// frame split along one or more dimensions. It is the animation unit
// consumed by the plot adapter: each entry is one frame.
type Stack struct {
	dims  []views.Dimension
	keys  []views.Key
	elems map[string]*DFrame
}

// NewStack returns an empty Stack split along dims.
func NewStack(dims []views.Dimension) *Stack {
	return &Stack{
		dims:  append([]views.Dimension(nil), dims...),
		elems: make(map[string]*DFrame),
	}
}

// Dims returns the stack's split dimensions.
func (s *Stack) Dims() []views.Dimension {
	return append([]views.Dimension(nil), s.dims...)
}

// Put stores df under key. The key must have one value per stack
// dimension.
func (s *Stack) Put(key views.Key, df *DFrame) error {
	if len(key) != len(s.dims) {
		return &views.KeyArityError{Key: key, Want: len(s.dims)}
	}
	c := key.Canon()
	if _, ok := s.elems[c]; !ok {
		s.keys = append(s.keys, key)
	}
	s.elems[c] = df
	return nil
}

// At returns the frame stored under key.
func (s *Stack) At(key views.Key) (*DFrame, bool) {
	df, ok := s.elems[key.Canon()]
	return df, ok
}

// Keys returns the stack's keys in insertion order.
func (s *Stack) Keys() []views.Key {
	return append([]views.Key(nil), s.keys...)
}

// Frames returns the stack's frames in insertion order.
func (s *Stack) Frames() []*DFrame {
	fs := make([]*DFrame, len(s.keys))
	for i, k := range s.keys {
		fs[i] = s.elems[k.Canon()]
	}
	return fs
}

// Len returns the number of frames in the stack.
func (s *Stack) Len() int { return len(s.keys) }

// Last returns the most recently inserted frame, or nil if the stack
// is empty.
func (s *Stack) Last() *DFrame {
	if len(s.keys) == 0 {
		return nil
	}
	return s.elems[s.keys[len(s.keys)-1].Canon()]
}

// DFView concatenates every stored frame back into a single wrapper.
// Each frame's rows are prefixed with its key values as columns, so
// the result's dimensions are the stack's split dimensions followed
// by every retained column. The most recently inserted frame is the
// template for the result's label and column metadata. DFView is the
// inverse of DFrame.Split: splitting the result by the same
// dimensions reproduces the stack's grouping.
func (s *Stack) DFView() (*DFrame, error) {
	if len(s.keys) == 0 {
		return nil, fmt.Errorf("dframe: DFView of an empty stack")
	}
	tmpl := s.Last()
	want := fmt.Sprint(tmpl.tab.Columns())
	for _, f := range s.elems {
		if fmt.Sprint(f.tab.Columns()) != want {
			return nil, fmt.Errorf("dframe: frames have mismatched columns %v and %v", f.tab.Columns(), tmpl.tab.Columns())
		}
	}

	parts := make([]table.Grouping, 0, len(s.keys))
	for _, key := range s.keys {
		f := s.elems[key.Canon()]
		b := new(table.Builder)
		for j, d := range s.dims {
			kv := reflect.ValueOf(key[j])
			col := reflect.MakeSlice(reflect.SliceOf(kv.Type()), f.Len(), f.Len())
			for r := 0; r < f.Len(); r++ {
				col.Index(r).Set(kv)
			}
			b.Add(d.Name, col.Interface())
		}
		for _, col := range f.tab.Columns() {
			b.Add(col, f.tab.Column(col))
		}
		parts = append(parts, b.Done())
	}
	combined := table.Concat(parts...).Table(table.RootGroupID)

	dims := append(s.Dims(), tmpl.dims...)
	return &DFrame{tab: combined, label: tmpl.label, dims: dims}, nil
}
