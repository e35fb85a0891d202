package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"named/internal/diagfmt"
	"named/internal/driver"
	"named/internal/source"
)

func newRewriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite <file.nm>",
		Short: "Print a file with named arguments resolved to positional form",
		Args:  cobra.ExactArgs(1),
		RunE:  runRewrite,
	}
	cmd.Flags().BoolP("write", "w", false, "write the result back to the file instead of stdout")
	cmd.Flags().Bool("mark-defaults", false, "annotate inserted default arguments with /* default */")
	cmd.Flags().Bool("check", false, "exit 1 when the file would change; print nothing")
	return cmd
}

func runRewrite(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())
	path := args[0]

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	markDefaults, err := cmd.Flags().GetBool("mark-defaults")
	if err != nil {
		return fmt.Errorf("failed to get mark-defaults flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts := s.opts
	opts.Emit = true
	opts.MarkDefaults = markDefaults

	fs := source.NewFileSet()
	res, err := driver.RunFile(cmd.Context(), fs, path, opts)
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		color, err := readColor(mustString(cmd, "color"), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, fs, diagfmt.PrettyOpts{Color: color}); err != nil {
			return err
		}
	}
	if res.HasErrors() {
		return errDiagnostics
	}

	original := fs.Get(res.FileID).Content
	changed := !bytes.Equal(original, res.Output)
	switch {
	case check:
		if changed {
			fmt.Fprintln(cmd.ErrOrStderr(), path)
			return errDiagnostics
		}
		return nil
	case write:
		if !changed {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, res.Output, info.Mode().Perm())
	default:
		_, err = cmd.OutOrStdout().Write(res.Output)
		return err
	}
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Root().PersistentFlags().GetString(name)
	return v
}
