// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dframe

import "fmt"

// An InvalidInputError reports an attempt to wrap data that is not a
// recognized tabular structure.
type InvalidInputError struct {
	Data interface{}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("dframe: cannot wrap %T; want *table.Table, table.Grouping, or a slice of structs", e.Data)
}

// A DimensionError reports a reference to a dimension the wrapper
// does not have.
type DimensionError struct {
	Dim string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dframe: no dimension %q", e.Dim)
}

// An OpError reports a misuse of the Apply escape hatch: an operation
// outside the allow-list, or arguments of the wrong shape.
type OpError struct {
	Op  string
	Msg string
}

func (e *OpError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("dframe: unknown operation %q", e.Op)
	}
	return fmt.Sprintf("dframe: %s: %s", e.Op, e.Msg)
}
