package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"named/internal/version"
)

// errDiagnostics is returned when diagnostics with errors were already
// printed; main exits 1 without printing anything else.
var errDiagnostics = errors.New("diagnostics reported errors")

// app owns one command tree. Tests build a fresh app per run.
type app struct {
	root    *cobra.Command
	cleanup func()
}

func newApp() *app {
	a := &app{}
	root := &cobra.Command{
		Use:           "named",
		Short:         "Named and default arguments for the .nm host language",
		Long:          `named rewrites calls with named arguments to positional form and fills omitted parameters from their declared defaults`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("config", "", "path to named.toml (default: searched upward from the working directory)")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from config)")
	pf.Int("jobs", 0, "max parallel workers (0 = from config, then GOMAXPROCS)")
	pf.Bool("no-cache", false, "disable the on-disk result cache")
	pf.String("ui", "auto", "progress view for multi-file runs (auto|on|off)")
	pf.Bool("skip", false, "open the capture window but rewrite nothing")
	pf.Bool("timings", false, "show timing information")
	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 0, "ring buffer capacity for --trace-mode ring|both")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopTracing, err := setupTracing(cmd)
		if err != nil {
			stopProfiling()
			return err
		}
		a.cleanup = func() {
			stopTracing()
			stopProfiling()
		}
		return nil
	}

	root.AddCommand(newCheckCmd(), newRewriteCmd(), newVersionCmd(), newCacheCmd())
	a.root = root
	return a
}

// execute runs the tree; the tracer is flushed on every path since cobra
// skips post-run hooks after an error.
func (a *app) execute(args []string, stdout, stderr io.Writer) error {
	a.root.SetArgs(args)
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	defer func() {
		if a.cleanup != nil {
			a.cleanup()
		}
	}()
	return a.root.Execute()
}

func main() {
	if err := newApp().execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
