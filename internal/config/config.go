// Package config loads named.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"named/internal/named"
)

// FileName is the project configuration file searched for upward.
const FileName = "named.toml"

type Config struct {
	Marker      MarkerConfig      `toml:"marker"`
	Rematch     RematchConfig     `toml:"rematch"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Driver      DriverConfig      `toml:"driver"`

	// Path of the file the values came from; empty for defaults.
	Path string `toml:"-"`
}

type MarkerConfig struct {
	Name     string `toml:"name"`
	Sentinel string `toml:"sentinel"`
}

type RematchConfig struct {
	Fallback string `toml:"fallback"`
}

type DiagnosticsConfig struct {
	Max   int  `toml:"max"`
	Dedup bool `toml:"dedup"`
}

type DriverConfig struct {
	Jobs       int    `toml:"jobs"` // 0 = GOMAXPROCS
	Cache      bool   `toml:"cache"`
	IgnoreFile string `toml:"ignore_file"`
}

func Default() Config {
	return Config{
		Marker:      MarkerConfig{Name: "option", Sentinel: named.DefaultSentinel},
		Rematch:     RematchConfig{Fallback: named.FallbackFirst.String()},
		Diagnostics: DiagnosticsConfig{Max: 100, Dedup: true},
		Driver:      DriverConfig{Cache: true, IgnoreFile: ".namedignore"},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load decodes path over Default(). Keys the schema does not know are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover returns the nearest named.toml above startDir, or Default() when
// there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Marker.Name) == "" {
		return errors.New("[marker].name must not be empty")
	}
	if _, err := named.ParseFallback(c.Rematch.Fallback); err != nil {
		return fmt.Errorf("[rematch].fallback: %w", err)
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must be >= 0, got %d", c.Diagnostics.Max)
	}
	if c.Driver.Jobs < 0 {
		return fmt.Errorf("[driver].jobs must be >= 0, got %d", c.Driver.Jobs)
	}
	return nil
}

// EngineOptions maps the file onto rewriter options.
func (c Config) EngineOptions() (named.Options, error) {
	fb, err := named.ParseFallback(c.Rematch.Fallback)
	if err != nil {
		return named.Options{}, err
	}
	return named.Options{Sentinel: c.Marker.Sentinel, Fallback: fb}, nil
}

// Fingerprint identifies the settings that change check results; it is part
// of the result cache key.
func (c Config) Fingerprint() string {
	return fmt.Sprintf("marker=%s;sentinel=%s;fallback=%s;max=%d;dedup=%t",
		c.Marker.Name, c.Marker.Sentinel, strings.ToLower(c.Rematch.Fallback),
		c.Diagnostics.Max, c.Diagnostics.Dedup)
}
