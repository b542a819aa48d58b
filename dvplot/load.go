// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aclements/go-dataview/dfplot"
	"github.com/aclements/go-gg/table"
	"github.com/kballard/go-shellquote"
)

// readCSV parses CSV data with a header row into a table, coercing
// numeric-looking columns.
func readCSV(r io.Reader) (*table.Table, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	return table.TableFromStrings(rows[0], rows[1:], true), nil
}

// parseOpts parses a shell-quoted list of key=value style options.
// Values that look like numbers or booleans are coerced; everything
// else stays a string.
func parseOpts(s string) (dfplot.Options, error) {
	opts := dfplot.Options{}
	if s == "" {
		return opts, nil
	}
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		eq := -1
		for i, c := range w {
			if c == '=' {
				eq = i
				break
			}
		}
		if eq <= 0 {
			return nil, fmt.Errorf("malformed option %q; want key=value", w)
		}
		key, val := w[:eq], w[eq+1:]
		opts[key] = coerce(val)
	}
	return opts, nil
}

func coerce(s string) interface{} {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
