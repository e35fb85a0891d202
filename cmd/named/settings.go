package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"named/internal/config"
	"named/internal/driver"
)

// settings are the persistent flags merged over named.toml.
type settings struct {
	cfg     config.Config
	color   bool
	ui      uiMode
	timings bool
	opts    driver.Options
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	pf := cmd.Root().PersistentFlags()

	cfgPath, err := pf.GetString("config")
	if err != nil {
		return s, fmt.Errorf("failed to get config flag: %w", err)
	}
	if cfgPath != "" {
		s.cfg, err = config.Load(cfgPath)
	} else {
		s.cfg, err = config.Discover(".")
	}
	if err != nil {
		return s, err
	}

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	if s.color, err = readColor(colorFlag, cmd.OutOrStdout()); err != nil {
		return s, err
	}
	uiFlag, err := pf.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return s, err
	}
	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	jobs, err := pf.GetInt("jobs")
	if err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := pf.GetBool("no-cache")
	if err != nil {
		return s, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	skip, err := pf.GetBool("skip")
	if err != nil {
		return s, fmt.Errorf("failed to get skip flag: %w", err)
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if maxDiagnostics < 0 || jobs < 0 {
		return s, fmt.Errorf("--max-diagnostics and --jobs must be >= 0")
	}

	s.opts = driver.Options{
		Config:         s.cfg,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		SkipRewrite:    skip,
	}
	if s.cfg.Driver.Cache && !noCache {
		cache, err := driver.OpenResultCache("named")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: result cache disabled: %v\n", err)
		} else {
			s.opts.Cache = cache
		}
	}
	return s, nil
}
