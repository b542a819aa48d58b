// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

// A Stack is an ordered mapping from Keys to Views, representing a
// view split along one or more dimensions. Keys have one value per
// stack dimension.
type Stack struct {
	dims  []Dimension
	keys  []Key
	elems map[string]View
}

// NewStack returns an empty Stack split along dims.
func NewStack(dims []Dimension) *Stack {
	return &Stack{
		dims:  append([]Dimension(nil), dims...),
		elems: make(map[string]View),
	}
}

// Dims returns the stack's split dimensions.
func (s *Stack) Dims() []Dimension {
	return append([]Dimension(nil), s.dims...)
}

// Put stores v under key. The key must have one value per stack
// dimension. Re-assigning an existing key replaces its view but
// keeps its position.
func (s *Stack) Put(key Key, v View) error {
	if len(key) != len(s.dims) {
		return &KeyArityError{Key: key, Want: len(s.dims)}
	}
	c := key.Canon()
	if _, ok := s.elems[c]; !ok {
		s.keys = append(s.keys, key)
	}
	s.elems[c] = v
	return nil
}

// At returns the view stored under key.
func (s *Stack) At(key Key) (View, bool) {
	v, ok := s.elems[key.Canon()]
	return v, ok
}

// Keys returns the stack's keys in insertion order.
func (s *Stack) Keys() []Key {
	return append([]Key(nil), s.keys...)
}

// Views returns the stack's views in insertion order.
func (s *Stack) Views() []View {
	vs := make([]View, len(s.keys))
	for i, k := range s.keys {
		vs[i] = s.elems[k.Canon()]
	}
	return vs
}

// Len returns the number of views in the stack.
func (s *Stack) Len() int { return len(s.keys) }

// Last returns the most recently inserted view, or nil if the stack
// is empty.
func (s *Stack) Last() View {
	if len(s.keys) == 0 {
		return nil
	}
	return s.elems[s.keys[len(s.keys)-1].Canon()]
}
