// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dfplot renders dframe wrappers and stacks with the go-gg
// plotting backend. A Plot wraps one frame or an animated stack of
// frames and delegates to one of a fixed set of plot routines, with
// per-plot-type filtering of style options.
package dfplot

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/aclements/go-dataview/dframe"
	"github.com/aclements/go-dataview/views"
	"github.com/aclements/go-gg/gg"
)

// Warning is a logger for reporting conditions that don't prevent
// rendering, such as style options that don't apply to the selected
// plot type.
var Warning = log.New(os.Stderr, "[dfplot] ", log.Lshortfile)

// Kind selects which plot routine a Plot uses.
type Kind int

const (
	// Line plots every numeric column against row order.
	Line Kind = iota

	// Box draws a five-number summary of every numeric column.
	Box

	// Hist draws binned counts of the selected columns.
	Hist

	// ScatterMatrix draws every pair of numeric columns against
	// each other in a facet grid.
	ScatterMatrix
)

var kindNames = map[Kind]string{
	Line:          "plot",
	Box:           "boxplot",
	Hist:          "hist",
	ScatterMatrix: "scatter_matrix",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind with the given external name.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("dfplot: unknown plot kind %q", s)
}

// A CompositionError reports an attempt to compose a plot onto a
// caller-supplied surface that the plot type cannot share.
type CompositionError struct {
	Kind   Kind
	Reason string
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("dfplot: cannot compose %s plot: %s", e.Kind, e.Reason)
}

// Options is a set of named style options consulted at render time.
type Options map[string]interface{}

// styleOpts is the per-plot-type allow-list of style option names.
// Options outside the active plot type's list are warned about and
// dropped at render time.
var styleOpts = map[string][]string{
	"plot": {"kind", "stacked", "xerr", "yerr", "share_x", "share_y",
		"table", "style", "secondary_y", "legend", "logx", "logy",
		"position", "colormap", "mark_right"},
	"hist": {"column", "by", "grid", "xlabelsize", "xrot", "ylabelsize",
		"yrot", "sharex", "sharey", "hist", "layout"},
	"boxplot":         {"column", "by", "fontsize", "layout", "grid", "rot"},
	"scatter_matrix":  {"alpha", "grid", "diagonal", "marker", "range_padding", "hist_kwds", "density_kwds"},
	"autocorrelation": {"kwds"},
}

// StyleOpts returns the union of every plot type's style option
// names, sorted.
func StyleOpts() []string {
	set := make(map[string]bool)
	for _, opts := range styleOpts {
		for _, o := range opts {
			set[o] = true
		}
	}
	out := make([]string, 0, len(set))
	for o := range set {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// A Plot renders a frame or an animated stack of frames with one of
// the Kind plot routines. A Plot must not be rendered concurrently.
type Plot struct {
	stack  *dframe.Stack
	kind   Kind
	styles []Options

	width, height int
}

// New returns a Plot rendering df as a single-frame sequence. The
// variadic opts form a cyclic style palette: frame n renders with
// opts[n % len(opts)].
func New(df *dframe.DFrame, kind Kind, opts ...Options) (*Plot, error) {
	if df == nil {
		return nil, fmt.Errorf("dfplot: nil frame")
	}
	s := dframe.NewStack(nil)
	if err := s.Put(views.Key{}, df); err != nil {
		return nil, err
	}
	return newPlot(s, kind, opts)
}

// NewStack returns a Plot rendering every frame of s as an animated
// sequence in stack order.
func NewStack(s *dframe.Stack, kind Kind, opts ...Options) (*Plot, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("dfplot: empty stack")
	}
	return newPlot(s, kind, opts)
}

func newPlot(s *dframe.Stack, kind Kind, opts []Options) (*Plot, error) {
	if _, ok := kindNames[kind]; !ok {
		return nil, fmt.Errorf("dfplot: unknown plot kind %d", int(kind))
	}
	return &Plot{stack: s, kind: kind, styles: opts, width: 500, height: 350}, nil
}

// SetSize sets the rendered figure size in pixels. The default is
// 500x350.
func (p *Plot) SetSize(width, height int) {
	p.width, p.height = width, height
}

// Frames returns the length of the animated sequence.
func (p *Plot) Frames() int { return p.stack.Len() }

func (p *Plot) clamp(frame int) int {
	if frame >= p.stack.Len() {
		frame = p.stack.Len() - 1
	}
	if frame < 0 {
		frame = 0
	}
	return frame
}

// styleFor resolves the style options for the given frame: the
// frame's entry in the cyclic palette, filtered by the active plot
// type's allow-list, with the figure size merged in. Options outside
// the allow-list are warned about and dropped, never kept and never
// fatal.
func (p *Plot) styleFor(frame int) Options {
	out := Options{}
	if len(p.styles) > 0 {
		src := p.styles[frame%len(p.styles)]
		names := make([]string, 0, len(src))
		for name := range src {
			names = append(names, name)
		}
		sort.Strings(names)
		allowed := styleOpts[p.kind.String()]
		for _, name := range names {
			if !containsString(allowed, name) {
				Warning.Printf("plot option %q does not apply to %s plot type", name, p.kind)
				continue
			}
			out[name] = src[name]
		}
	}
	out["figsize"] = [2]int{p.width, p.height}
	return out
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// Render renders the frame at the given position in the animated
// sequence to w as SVG. Out-of-range positions are clamped to the
// nearest valid frame. Each render builds a fresh drawing surface,
// so frames never accumulate state from earlier renders.
func (p *Plot) Render(w io.Writer, frame int) error {
	frame = p.clamp(frame)
	style := p.styleFor(frame)
	gp := gg.NewPlot(emptyData())
	if err := p.apply(gp, frame, style, false); err != nil {
		return err
	}
	size := style["figsize"].([2]int)
	return gp.WriteSVG(w, size[0], size[1])
}

// RenderTo composes the frame at the given position onto a
// caller-supplied plot. The caller owns the surface and its disposal;
// RenderTo only adds data and layers. ScatterMatrix plots cannot be
// composed, and Hist plots can be composed only when they draw a
// single column; both return a *CompositionError.
func (p *Plot) RenderTo(gp *gg.Plot, frame int) error {
	frame = p.clamp(frame)
	if p.kind == ScatterMatrix {
		return &CompositionError{Kind: p.kind, Reason: "scatter matrix manages its own facet grid"}
	}
	style := p.styleFor(frame)
	if p.kind == Hist {
		df, _ := p.frameAt(frame)
		cols, err := plotCols(df, style)
		if err != nil {
			return err
		}
		if len(cols) > 1 {
			return &CompositionError{Kind: p.kind, Reason: "multiple histograms on one surface"}
		}
	}
	gp.Save()
	err := p.apply(gp, frame, style, true)
	gp.Restore()
	return err
}

func (p *Plot) frameAt(frame int) (*dframe.DFrame, views.Key) {
	return p.stack.Frames()[frame], p.stack.Keys()[frame]
}

// apply sets gp's data and layers for one frame. Line and Box frames
// set a title naming the frame's stack key when they own the surface;
// Hist and ScatterMatrix manage their own presentation and are left
// untitled, matching their redraw-without-clearing behavior.
func (p *Plot) apply(gp *gg.Plot, frame int, style Options, composed bool) error {
	df, key := p.frameAt(frame)

	var err error
	switch p.kind {
	case Line:
		err = linePlot(gp, df, style)
	case Box:
		err = boxPlot(gp, df, style)
	case Hist:
		err = histPlot(gp, df, style)
	case ScatterMatrix:
		err = scatterMatrixPlot(gp, df, style)
	}
	if err != nil {
		return err
	}

	if !composed && (p.kind == Line || p.kind == Box) {
		gp.Add(gg.Title(p.frameTitle(df, key)))
	}
	return nil
}

func (p *Plot) frameTitle(df *dframe.DFrame, key views.Key) string {
	dims := p.stack.Dims()
	if len(dims) == 0 {
		return df.Label()
	}
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.Name
	}
	return fmt.Sprintf("%s [%s = %s]", df.Label(), strings.Join(names, ", "), key)
}
