// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dframe

import (
	"reflect"
	"sort"
	"testing"

	"github.com/aclements/go-dataview/views"
	"github.com/aclements/go-gg/table"
)

func testTable() *table.Table {
	return new(table.Builder).
		Add("city", []string{"bos", "bos", "nyc", "nyc"}).
		Add("year", []int{2000, 2001, 2000, 2001}).
		Add("temp", []float64{10, 12, 13, 15}).
		Done()
}

func testFrame(t *testing.T) *DFrame {
	t.Helper()
	df, err := New(testTable(), "weather")
	if err != nil {
		t.Fatal(err)
	}
	return df
}

func TestNew(t *testing.T) {
	df := testFrame(t)
	if want := []string{"city", "year", "temp"}; !reflect.DeepEqual(df.Columns(), want) {
		t.Errorf("Columns() = %v; want %v", df.Columns(), want)
	}
	if want := views.Dims("city", "year", "temp"); !reflect.DeepEqual(df.Dims(), want) {
		t.Errorf("Dims() = %v; want %v", df.Dims(), want)
	}
	if df.Len() != 4 || df.Label() != "weather" {
		t.Errorf("Len/Label = %d/%q", df.Len(), df.Label())
	}
}

func TestNewInvalidInput(t *testing.T) {
	for _, data := range []interface{}{42, "x", []int{1}, nil} {
		_, err := New(data, "l")
		if err == nil {
			t.Errorf("New(%T) should fail", data)
			continue
		}
		if _, ok := err.(*InvalidInputError); !ok {
			t.Errorf("New(%T) error is %T; want *InvalidInputError", data, err)
		}
	}
}

func TestNewFromStructs(t *testing.T) {
	type row struct {
		Name string
		N    int
	}
	df, err := New([]row{{"a", 1}, {"b", 2}}, "rows")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Name", "N"}; !reflect.DeepEqual(df.Columns(), want) {
		t.Errorf("Columns() = %v; want %v", df.Columns(), want)
	}
	if df.Len() != 2 {
		t.Errorf("Len() = %d; want 2", df.Len())
	}
}

func TestNewFromGrouping(t *testing.T) {
	g := table.GroupBy(testTable(), "city")
	df, err := New(g, "grouped")
	if err != nil {
		t.Fatal(err)
	}
	if df.Len() != 4 {
		t.Errorf("Len() = %d; want 4", df.Len())
	}
}

func TestNewWithDims(t *testing.T) {
	dims := []views.Dimension{{Name: "city"}, {Name: "year"}, {Name: "temp", Unit: "C"}}
	df, err := NewWithDims(testTable(), "weather", dims)
	if err != nil {
		t.Fatal(err)
	}
	if got := df.Dims()[2].Unit; got != "C" {
		t.Errorf("temp unit = %q; want C", got)
	}
	if _, err := NewWithDims(testTable(), "weather", dims[:2]); err == nil {
		t.Errorf("short dims should fail")
	}
	bad := []views.Dimension{{Name: "x"}, {Name: "year"}, {Name: "temp"}}
	if _, err := NewWithDims(testTable(), "weather", bad); err == nil {
		t.Errorf("mismatched dims should fail")
	}
}

func TestSelectScalar(t *testing.T) {
	df := testFrame(t)
	sel, err := df.Select(map[string]interface{}{"city": "bos"})
	if err != nil {
		t.Fatal(err)
	}
	if sel.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", sel.Len())
	}
	for _, c := range sel.Data().Column("city").([]string) {
		if c != "bos" {
			t.Errorf("kept row with city %q", c)
		}
	}
	// The original frame is untouched.
	if df.Len() != 4 {
		t.Errorf("source frame mutated; Len() = %d", df.Len())
	}
}

func TestSelectRange(t *testing.T) {
	df := testFrame(t)
	// Strictly between: both bounds excluded.
	sel, err := df.Select(map[string]interface{}{"temp": Range{10, 13}})
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{12}; !reflect.DeepEqual(sel.Data().Column("temp"), want) {
		t.Errorf("temp = %v; want %v", sel.Data().Column("temp"), want)
	}
}

func TestSelectConjunction(t *testing.T) {
	df := testFrame(t)
	sel, err := df.Select(map[string]interface{}{"city": "nyc", "year": 2000})
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{13}; !reflect.DeepEqual(sel.Data().Column("temp"), want) {
		t.Errorf("temp = %v; want %v", sel.Data().Column("temp"), want)
	}
}

func TestSelectNumericCrossType(t *testing.T) {
	df := testFrame(t)
	// An int column matched against a float criterion.
	sel, err := df.Select(map[string]interface{}{"year": 2001.0})
	if err != nil {
		t.Fatal(err)
	}
	if sel.Len() != 2 {
		t.Errorf("Len() = %d; want 2", sel.Len())
	}
}

func TestSelectErrors(t *testing.T) {
	df := testFrame(t)
	_, err := df.Select(map[string]interface{}{"bogus": 1})
	if _, ok := err.(*DimensionError); !ok {
		t.Errorf("error is %T (%v); want *DimensionError", err, err)
	}
	if _, err := df.Select(map[string]interface{}{"city": Range{0, 1}}); err == nil {
		t.Errorf("Range on a string column should fail")
	}
}

func TestAt(t *testing.T) {
	df := testFrame(t)

	got, err := df.At()
	if err != nil || got != df {
		t.Errorf("At() = %v, %v; want the receiver", got, err)
	}

	sel, err := df.At("nyc", 2001, 15.0)
	if err != nil {
		t.Fatal(err)
	}
	if sel.Len() != 1 {
		t.Errorf("Len() = %d; want 1", sel.Len())
	}

	_, err = df.At("nyc")
	if _, ok := err.(*views.KeyArityError); !ok {
		t.Errorf("error is %T (%v); want *views.KeyArityError", err, err)
	}
}

func TestFrameIsACopy(t *testing.T) {
	df := testFrame(t)
	f := df.Frame()
	f.Column("temp").([]float64)[0] = 99
	if got := df.Data().Column("temp").([]float64)[0]; got != 10 {
		t.Errorf("wrapper data changed to %v after mutating the copy", got)
	}
}

func TestApply(t *testing.T) {
	df := testFrame(t)

	sorted, err := df.Apply("sort", "temp")
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{10, 12, 13, 15}; !reflect.DeepEqual(sorted.Data().Column("temp"), want) {
		t.Errorf("sort: temp = %v; want %v", sorted.Data().Column("temp"), want)
	}

	head, err := df.Apply("head", 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{10, 12}; !reflect.DeepEqual(head.Data().Column("temp"), want) {
		t.Errorf("head: temp = %v; want %v", head.Data().Column("temp"), want)
	}

	tail, err := df.Apply("tail", 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{15}; !reflect.DeepEqual(tail.Data().Column("temp"), want) {
		t.Errorf("tail: temp = %v; want %v", tail.Data().Column("temp"), want)
	}

	removed, err := df.Apply("remove", "year")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"city", "temp"}; !reflect.DeepEqual(removed.Columns(), want) {
		t.Errorf("remove: Columns() = %v; want %v", removed.Columns(), want)
	}
	if want := views.Dims("city", "temp"); !reflect.DeepEqual(removed.Dims(), want) {
		t.Errorf("remove: Dims() = %v; want %v", removed.Dims(), want)
	}

	renamed, err := df.Apply("rename", "temp", "high")
	if err != nil {
		t.Fatal(err)
	}
	if renamed.Data().Column("high") == nil {
		t.Errorf("rename: no column high; have %v", renamed.Columns())
	}
	if _, ok := renamed.dimOf("high"); !ok {
		t.Errorf("rename: no dimension high; have %v", renamed.Dims())
	}
}

func TestApplyErrors(t *testing.T) {
	df := testFrame(t)
	for _, test := range []struct {
		op   string
		args []interface{}
	}{
		{"transpose", nil},
		{"sort", nil},
		{"sort", []interface{}{1}},
		{"head", []interface{}{"x"}},
		{"head", nil},
		{"rename", []interface{}{"temp"}},
	} {
		_, err := df.Apply(test.op, test.args...)
		if err == nil {
			t.Errorf("Apply(%q, %v) should fail", test.op, test.args)
			continue
		}
		if _, ok := err.(*OpError); !ok {
			t.Errorf("Apply(%q, %v) error is %T; want *OpError", test.op, test.args, err)
		}
	}

	_, err := df.Apply("remove", "bogus")
	if _, ok := err.(*DimensionError); !ok {
		t.Errorf("remove bogus error is %T; want *DimensionError", err)
	}
}

func TestSplit(t *testing.T) {
	df := testFrame(t)
	st, err := df.Split("city")
	if err != nil {
		t.Fatal(err)
	}
	if st.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", st.Len())
	}
	if want := []views.Key{{"bos"}, {"nyc"}}; !reflect.DeepEqual(st.Keys(), want) {
		t.Errorf("Keys() = %v; want %v", st.Keys(), want)
	}
	bos, ok := st.At(views.Key{"bos"})
	if !ok {
		t.Fatal("no bos frame")
	}
	if want := []string{"year", "temp"}; !reflect.DeepEqual(bos.Columns(), want) {
		t.Errorf("bos columns = %v; want %v", bos.Columns(), want)
	}
	if want := []float64{10, 12}; !reflect.DeepEqual(bos.Data().Column("temp"), want) {
		t.Errorf("bos temp = %v; want %v", bos.Data().Column("temp"), want)
	}

	if _, err := df.Split(); err == nil {
		t.Errorf("Split() should fail")
	}
	if _, err := df.Split("bogus"); err == nil {
		t.Errorf("Split(bogus) should fail")
	}
}

func TestDFViewRoundTrip(t *testing.T) {
	df := testFrame(t)
	st, err := df.Split("city")
	if err != nil {
		t.Fatal(err)
	}
	combined, err := st.DFView()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"city", "year", "temp"}; !reflect.DeepEqual(combined.Columns(), want) {
		t.Fatalf("combined columns = %v; want %v", combined.Columns(), want)
	}
	if combined.Len() != df.Len() {
		t.Fatalf("combined Len() = %d; want %d", combined.Len(), df.Len())
	}

	st2, err := combined.Split("city")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(st.Keys(), st2.Keys()) {
		t.Fatalf("round-trip keys = %v; want %v", st2.Keys(), st.Keys())
	}
	for _, key := range st.Keys() {
		a, _ := st.At(key)
		b, _ := st2.At(key)
		at := append([]float64(nil), a.Data().Column("temp").([]float64)...)
		bt := append([]float64(nil), b.Data().Column("temp").([]float64)...)
		sort.Float64s(at)
		sort.Float64s(bt)
		if !reflect.DeepEqual(at, bt) {
			t.Errorf("%v: row set %v != %v", key, bt, at)
		}
	}
}

func TestDFViewEmpty(t *testing.T) {
	if _, err := NewStack(nil).DFView(); err == nil {
		t.Errorf("DFView of empty stack should fail")
	}
}

func TestFloats(t *testing.T) {
	got, err := Floats([]int{1, 2})
	if err != nil || !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Errorf("Floats([]int) = %v, %v", got, err)
	}
	if _, err := Floats([]string{"a"}); err == nil {
		t.Errorf("Floats([]string) should fail")
	}
}
