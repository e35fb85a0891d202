package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"named/internal/named"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
[marker]
name = "opt"

[rematch]
fallback = "abandon"

[driver]
jobs = 3
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Fatalf("path = %q", cfg.Path)
	}
	if cfg.Marker.Name != "opt" || cfg.Driver.Jobs != 3 {
		t.Fatalf("cfg = %+v", cfg)
	}
	// unset keys keep defaults
	if cfg.Marker.Sentinel != named.DefaultSentinel || cfg.Diagnostics.Max != 100 || !cfg.Driver.Cache {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	opts, err := cfg.EngineOptions()
	if err != nil || opts.Fallback != named.FallbackAbandon {
		t.Fatalf("EngineOptions = %+v, %v", opts, err)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Marker.Name != "option" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[marker]\nnmae = \"x\"\n", "unknown keys: marker.nmae"},
		{"bad fallback", "[rematch]\nfallback = \"guess\"\n", "invalid rematch fallback"},
		{"empty marker", "[marker]\nname = \"\"\n", "[marker].name"},
		{"negative jobs", "[driver]\njobs = -1\n", "[driver].jobs"},
		{"syntax", "[marker\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestFingerprintTracksResultSettings(t *testing.T) {
	a := Default()
	b := Default()
	b.Driver.Jobs = 8
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("jobs must not change the fingerprint")
	}
	b.Rematch.Fallback = "abandon"
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("fallback must change the fingerprint")
	}
}
