package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"named/internal/diag"
	"named/internal/diagfmt"
	"named/internal/driver"
	"named/internal/observ"
	"named/internal/source"
	"named/internal/ui"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Resolve named arguments and report diagnostics",
		Long:  `Run every *.nm file under the given paths (default: current directory) through the checker and the named-argument rewriter, then print the diagnostics that survive.`,
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	var files []string
	for _, p := range args {
		found, err := driver.Discover(p, s.cfg.Driver.IgnoreFile)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no .nm files found")
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	fs := source.NewFileSetWithBase(wd)
	opts := s.opts
	// в json тайминги едут отдельными OBS-диагностиками
	opts.Timings = s.timings && format == "json"
	run := func(sink driver.ProgressSink) ([]*driver.FileResult, error) {
		o := opts
		o.Sink = sink
		return driver.RunFiles(cmd.Context(), fs, files, o)
	}

	var results []*driver.FileResult
	if len(files) > 1 && shouldUseTUI(s.ui, cmd.OutOrStdout()) {
		results, err = ui.Run(cmd.OutOrStdout(), "named check", files, run)
	} else {
		results, err = run(nil)
	}
	if err != nil {
		return err
	}

	all := mergeBags(results)
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.Pretty(out, all, fs, diagfmt.PrettyOpts{Color: s.color, PathMode: pathMode, ShowNotes: withNotes})
	case "short":
		err = diagfmt.Short(out, all, fs, pathMode)
	case "json":
		err = diagfmt.JSON(out, all, fs, diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode, IncludeNotes: withNotes})
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), summarize(results, all))
	if s.timings {
		reports := make([]observ.Report, len(results))
		for i, r := range results {
			reports[i] = r.Timing
		}
		fmt.Fprint(cmd.ErrOrStderr(), observ.Merge(reports...).Summary())
	}
	if all.HasErrors() {
		return errDiagnostics
	}
	return nil
}

// mergeBags concatenates per-file bags in result order.
func mergeBags(results []*driver.FileResult) *diag.Bag {
	n := 0
	for _, r := range results {
		n += r.Bag.Len()
	}
	all := diag.NewBag(max(n, 1))
	for _, r := range results {
		for _, d := range r.Bag.Items() {
			all.Add(d)
		}
	}
	return all
}

func summarize(results []*driver.FileResult, all *diag.Bag) string {
	var rewritten, cached int
	for _, r := range results {
		rewritten += r.Report.Rewritten
		if r.Cached {
			cached++
		}
	}
	errs := all.Count(diag.SevError)
	warns := all.Count(diag.SevWarning) - errs
	msg := fmt.Sprintf("checked %d file(s): %d error(s), %d warning(s), %d call(s) rewritten",
		len(results), errs, warns, rewritten)
	if cached > 0 {
		msg += fmt.Sprintf(" (%d cached)", cached)
	}
	return msg
}
