// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dfplot

import (
	"fmt"
	"image/color"
	"math"
	"reflect"

	"github.com/aclements/go-dataview/dframe"
	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

func emptyData() table.Grouping {
	return new(table.Table)
}

// numericCols returns the frame's numeric column names, in column
// order.
func numericCols(df *dframe.DFrame) []string {
	var cols []string
	for _, c := range df.Columns() {
		if _, err := dframe.Floats(df.Data().Column(c)); err == nil {
			cols = append(cols, c)
		}
	}
	return cols
}

// plotCols returns the columns a plot draws: the numeric columns,
// restricted by the "column" style option if present.
func plotCols(df *dframe.DFrame, style Options) ([]string, error) {
	cols := numericCols(df)
	sel, ok := style["column"]
	if !ok {
		return cols, nil
	}
	var want []string
	switch s := sel.(type) {
	case string:
		want = []string{s}
	case []string:
		want = s
	default:
		return nil, fmt.Errorf("dfplot: column option must be string or []string, got %T", sel)
	}
	for _, w := range want {
		if !containsString(cols, w) {
			return nil, fmt.Errorf("dfplot: no numeric column %q", w)
		}
	}
	return want, nil
}

// linePlot draws every plotted column against row order, one colored
// line per column.
func linePlot(gp *gg.Plot, df *dframe.DFrame, style Options) error {
	cols, err := plotCols(df, style)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("dfplot: no numeric columns to plot")
	}

	b := new(table.Builder)
	rows := make([]int, df.Len())
	for i := range rows {
		rows[i] = i
	}
	b.Add("row", rows)
	for _, c := range cols {
		fs, err := dframe.Floats(df.Data().Column(c))
		if err != nil {
			return err
		}
		b.Add(c, fs)
	}
	data := table.Unpivot(b.Done(), "metric", "value", cols...)

	gp.SetData(data)
	gp.Add(gg.LayerLines{X: "row", Y: "value", Color: "metric"})
	return nil
}

// boxPlot draws a five-number summary per plotted column: the
// interquartile range as a shaded band, the median as a line, and
// the extremes as points, positioned by column order and tagged with
// the column name.
func boxPlot(gp *gg.Plot, df *dframe.DFrame, style Options) error {
	cols, err := plotCols(df, style)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("dfplot: no numeric columns to plot")
	}

	pos := make([]float64, len(cols))
	lo := make([]float64, len(cols))
	q1 := make([]float64, len(cols))
	med := make([]float64, len(cols))
	q3 := make([]float64, len(cols))
	hi := make([]float64, len(cols))
	for i, c := range cols {
		xs, err := dframe.Floats(df.Data().Column(c))
		if err != nil {
			return err
		}
		pos[i] = float64(i)
		lo[i], hi[i] = stats.Bounds(xs)
		s := stats.Sample{Xs: xs}
		q1[i] = s.Quantile(0.25)
		med[i] = s.Quantile(0.5)
		q3[i] = s.Quantile(0.75)
	}
	data := new(table.Builder).
		Add("pos", pos).
		Add("metric", cols).
		Add("min", lo).
		Add("q1", q1).
		Add("median", med).
		Add("q3", q3).
		Add("max", hi).
		Done()

	gp.SetData(data)
	gp.Add(
		gg.LayerArea{X: "pos", Upper: "q3", Lower: "q1", Fill: gp.Const(color.Gray{192})},
		gg.LayerLines{X: "pos", Y: "median"},
		gg.LayerPoints{X: "pos", Y: "min"},
		gg.LayerPoints{X: "pos", Y: "max"},
		gg.LayerTags{X: "pos", Y: "median", Label: "metric"},
	)
	return nil
}

// histPlot draws binned counts of every plotted column as stepped
// lines, one color per series. The "by" style option splits a single
// column into one series per distinct value instead.
func histPlot(gp *gg.Plot, df *dframe.DFrame, style Options) error {
	cols, err := plotCols(df, style)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("dfplot: no numeric columns to plot")
	}

	type series struct {
		name string
		xs   []float64
	}
	var all []series
	if by, ok := style["by"]; ok {
		name, ok := by.(string)
		if !ok {
			return fmt.Errorf("dfplot: by option must be string, got %T", by)
		}
		if len(cols) != 1 {
			return fmt.Errorf("dfplot: by option requires a single plotted column; have %d", len(cols))
		}
		groups, err := splitBy(df, name, cols[0])
		if err != nil {
			return err
		}
		for _, g := range groups {
			all = append(all, series{g.name, g.xs})
		}
	} else {
		for _, c := range cols {
			xs, err := dframe.Floats(df.Data().Column(c))
			if err != nil {
				return err
			}
			all = append(all, series{c, xs})
		}
	}

	const nbins = 10
	var bins, counts []float64
	var names []string
	for _, s := range all {
		centers, cs := histogram(s.xs, nbins)
		for i := range centers {
			bins = append(bins, centers[i])
			counts = append(counts, cs[i])
			names = append(names, s.name)
		}
	}
	data := new(table.Builder).
		Add("bin", bins).
		Add("count", counts).
		Add("series", names).
		Done()

	gp.SetData(data)
	gp.SetScale("y", gg.NewLinearScaler().Include(0))
	gp.Add(gg.LayerSteps{
		LayerPaths: gg.LayerPaths{X: "bin", Y: "count", Color: "series"},
		Step:       gg.StepHMid,
	})
	return nil
}

type byGroup struct {
	name string
	xs   []float64
}

// splitBy partitions the value column by the distinct values of the
// by column, in order of first appearance.
func splitBy(df *dframe.DFrame, by, value string) ([]byGroup, error) {
	byCol := df.Data().Column(by)
	if byCol == nil {
		return nil, fmt.Errorf("dfplot: no column %q", by)
	}
	xs, err := dframe.Floats(df.Data().Column(value))
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(byCol)
	var order []string
	acc := make(map[string][]float64)
	for i := 0; i < rv.Len(); i++ {
		name := fmt.Sprint(rv.Index(i).Interface())
		if _, ok := acc[name]; !ok {
			order = append(order, name)
		}
		acc[name] = append(acc[name], xs[i])
	}
	groups := make([]byGroup, len(order))
	for i, name := range order {
		groups[i] = byGroup{name, acc[name]}
	}
	return groups, nil
}

// histogram bins xs into nbins equal-width bins and returns the bin
// centers and counts. Non-finite values do not bin and are dropped.
func histogram(xs []float64, nbins int) (centers, counts []float64) {
	var finite []float64
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return nil, nil
	}
	lo, hi := stats.Bounds(finite)
	if lo == hi {
		return []float64{lo}, []float64{float64(len(finite))}
	}
	width := (hi - lo) / float64(nbins)
	counts = make([]float64, nbins)
	for _, x := range finite {
		i := int((x - lo) / width)
		if i >= nbins {
			i = nbins - 1
		}
		counts[i]++
	}
	centers = make([]float64, nbins)
	for i := range centers {
		centers[i] = lo + (float64(i)+0.5)*width
	}
	return centers, counts
}

// scatterMatrixPlot draws every pair of numeric columns against each
// other in a facet grid with per-variable scales.
func scatterMatrixPlot(gp *gg.Plot, df *dframe.DFrame, style Options) error {
	cols := numericCols(df)
	if len(cols) < 2 {
		return fmt.Errorf("dfplot: scatter matrix requires at least two numeric columns; have %d", len(cols))
	}

	vals := make(map[string][]float64, len(cols))
	for _, c := range cols {
		xs, err := dframe.Floats(df.Data().Column(c))
		if err != nil {
			return err
		}
		vals[c] = xs
	}

	n := df.Len()
	var xvar, yvar []string
	var xs, ys []float64
	for _, cx := range cols {
		for _, cy := range cols {
			for i := 0; i < n; i++ {
				xvar = append(xvar, cx)
				yvar = append(yvar, cy)
				xs = append(xs, vals[cx][i])
				ys = append(ys, vals[cy][i])
			}
		}
	}
	data := new(table.Builder).
		Add("x var", xvar).
		Add("y var", yvar).
		Add("x", xs).
		Add("y", ys).
		Done()

	gp.SetData(data)
	gp.Add(
		gg.FacetX{Col: "x var", SplitXScales: true},
		gg.FacetY{Col: "y var", SplitYScales: true},
		gg.LayerPoints{X: "x", Y: "y"},
	)
	return nil
}
