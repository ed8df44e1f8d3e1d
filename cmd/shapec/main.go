// Command shapec batch-checks the (left, right) assignability pairs
// declared in a YAML fixture file and prints a diagnostic tree, one entry
// per case. Flag parsing sticks to the standard library flag package
// rather than a third-party CLI framework; terminal-aware coloring uses
// go-isatty plus fatih/color.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/shapelang/shapec/internal/cache"
	"github.com/shapelang/shapec/internal/config"
	"github.com/shapelang/shapec/internal/fixture"
	"github.com/shapelang/shapec/internal/types"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("shapec", flag.ContinueOnError)
	fixturePath := fs.String("fixture", "", "path to a YAML fixture file (required)")
	cachePath := fs.String("cache", "", "optional SQLite cache path")
	strict := fs.Bool("strict-null-checks", false, "enable strict null checks")
	trace := fs.Bool("trace", false, "tag each query with a UUID trace id")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "shapec: -fixture is required")
		return 2
	}

	useColor := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	if !useColor {
		color.NoColor = true
	}

	f, err := fixture.Load(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shapec: %v\n", err)
		return 1
	}

	cfg := config.Config{StrictNullChecks: *strict, TraceQueries: *trace}

	var c *cache.Cache
	if *cachePath != "" {
		c, err = cache.Open(context.Background(), *cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "shapec: %v\n", err)
			return 1
		}
		defer c.Close()
	}

	failures := 0
	for _, cs := range f.Cases {
		caseCfg := cfg
		caseCfg.StrictNullChecks = caseCfg.StrictNullChecks || cs.StrictNullCheck
		loc := types.SourceLoc{File: *fixturePath}

		var traceID string
		if cfg.TraceQueries {
			traceID = uuid.NewString()
		}

		var checkErr error
		if c != nil {
			checkErr = c.CheckCached(context.Background(), cs.Left, cs.Right, loc, caseCfg)
		} else {
			checkErr = types.Assign(cs.Left, cs.Right, loc, caseCfg)
		}

		ok := checkErr == nil
		if ok != cs.ExpectOK {
			failures++
			if traceID != "" {
				red.Printf("[%s] FAIL  %s: expected ok=%t, got ok=%t\n", traceID, cs.Name, cs.ExpectOK, ok)
			} else {
				red.Printf("FAIL  %s: expected ok=%t, got ok=%t\n", cs.Name, cs.ExpectOK, ok)
			}
			if checkErr != nil {
				yellow.Printf("      %v\n", checkErr)
			}
			continue
		}
		if traceID != "" {
			green.Printf("[%s] ok    %s\n", traceID, cs.Name)
		} else {
			green.Printf("ok    %s\n", cs.Name)
		}
	}

	if failures > 0 {
		return 1
	}
	return 0
}
