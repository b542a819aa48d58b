// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dvplot plots tabular CSV data.
//
// dvplot reads one or more CSV files (or standard input), wraps them
// in a dataview frame, and renders the selected plot type as SVG.
// The frame can be split along dimensions to produce an animated
// sequence, with -frame selecting which frame to render. With -table
// it prints the parsed table instead of plotting.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/aclements/go-dataview/dfplot"
	"github.com/aclements/go-dataview/dframe"
	"github.com/aclements/go-gg/table"
)

func main() {
	log.SetPrefix("dvplot: ")
	log.SetFlags(0)

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout)")
		flagKind       = flag.String("kind", "plot", "plot `type`: plot, boxplot, hist, or scatter_matrix")
		flagSplit      = flag.String("split", "", "split frames by comma-separated `dims` before plotting")
		flagFrame      = flag.Int("frame", 0, "render frame `n` of a split sequence")
		flagOpts       = flag.String("opts", "", "space-separated key=value style `options`")
		flagTable      = flag.Bool("table", false, "output a table instead of a plot")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [inputs...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	// Parse CSV inputs.
	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var tabs []table.Grouping
	for _, path := range paths {
		func() {
			f := os.Stdin
			if path != "-" {
				var err error
				f, err = os.Open(path)
				if err != nil {
					log.Fatal(err)
				}
				defer f.Close()
			}

			tab, err := readCSV(f)
			if err != nil {
				log.Fatalf("%s: %s", path, err)
			}
			tabs = append(tabs, tab)
		}()
	}
	label := "data"
	if paths[0] != "-" {
		label = strings.TrimSuffix(filepath.Base(paths[0]), ".csv")
	}
	df, err := dframe.New(table.Concat(tabs...), label)
	if err != nil {
		log.Fatal(err)
	}

	// Prepare for output.
	f := os.Stdout
	if *flagOut != "" {
		var err error
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	// Output table.
	if *flagTable {
		table.Fprint(f, df.Data())
		return
	}

	kind, err := dfplot.ParseKind(*flagKind)
	if err != nil {
		log.Fatal(err)
	}
	opts, err := parseOpts(*flagOpts)
	if err != nil {
		log.Fatal(err)
	}

	// Plot.
	var p *dfplot.Plot
	if *flagSplit != "" {
		stack, err := df.Split(strings.Split(*flagSplit, ",")...)
		if err != nil {
			log.Fatal(err)
		}
		p, err = dfplot.NewStack(stack, kind, opts)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		p, err = dfplot.New(df, kind, opts)
		if err != nil {
			log.Fatal(err)
		}
	}

	if err := p.Render(f, *flagFrame); err != nil {
		log.Fatal(err)
	}
}
