package driver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"named/internal/diag"
	"named/internal/source"
)

const rewriteSrc = `class P {
	fn make(w: int, @option(2) h: int, @option label: string) { }
	fn m() { make(h = 5, w = 1); new P(); }
}
`

const abandonSrc = `class P {
	fn make(w: int, h: int) { }
	fn m() { make(q = 1, w = 2); }
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func codeIDs(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}

func TestRunFileRewrites(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.nm", rewriteSrc)
	res, err := RunFile(context.Background(), source.NewFileSet(), path, Options{Emit: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Codes())
	}
	if !res.Changed() || res.Report.Rewritten != 1 || res.Report.Discarded != 2 {
		t.Fatalf("report = %+v", res.Report)
	}
	if !strings.Contains(string(res.Output), "make(1, 5, null);") {
		t.Fatalf("output:\n%s", res.Output)
	}
	if res.Cached {
		t.Fatal("no cache configured")
	}
}

func TestRunFileOmittedDefaults(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  string
		codes []string
	}{
		{
			name: "method",
			src: `class P {
	fn make(w: int, @option(2) h: int) { }
	fn m() { make(1); }
}
`,
			want: "make(1, 2);",
		},
		{
			name: "constructor",
			src: `class P {
	init(w: int, @option h: int) { }
	fn m() { new P(1); }
}
`,
			want: "new P(1, 0);",
		},
		{
			name: "genuine mismatch is reported once",
			src: `class P {
	fn make(w: int, @option(2) h: int) { }
	fn m() { make("s"); }
}
`,
			want:  `make("s", 2);`,
			codes: []string{"SEM3015"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "p.nm", tt.src)
			res, err := RunFile(context.Background(), source.NewFileSet(), path, Options{Emit: true})
			if err != nil {
				t.Fatal(err)
			}
			if got := codeIDs(res.Bag); !slices.Equal(got, tt.codes) {
				t.Fatalf("codes = %v, want %v", got, tt.codes)
			}
			if res.Report.Rewritten != 1 || res.Report.Defaults != 1 || res.Report.Replayed != 0 {
				t.Fatalf("report = %+v", res.Report)
			}
			if !strings.Contains(string(res.Output), tt.want) {
				t.Fatalf("output:\n%s", res.Output)
			}
		})
	}
}

func TestRunFileReplaysAbandonedCall(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.nm", abandonSrc)
	res, err := RunFile(context.Background(), source.NewFileSet(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := codeIDs(res.Bag); !slices.Equal(got, []string{"SEM3005", "SEM3005"}) {
		t.Fatalf("codes = %v", got)
	}
	if res.Report.Abandoned != 1 || res.Report.Replayed != 2 || res.Changed() {
		t.Fatalf("report = %+v", res.Report)
	}
}

func TestRunFileSkipRewrite(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.nm", rewriteSrc)
	res, err := RunFile(context.Background(), source.NewFileSet(), path, Options{SkipRewrite: true, Emit: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 2 || res.Changed() {
		t.Fatalf("codes = %v, report = %+v", res.Bag.Codes(), res.Report)
	}
	if string(res.Output) != rewriteSrc {
		t.Fatalf("output changed:\n%s", res.Output)
	}
}

func TestRunFileStopsAfterParseErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.nm", "class A {\n")
	res, err := RunFile(context.Background(), source.NewFileSet(), path, Options{Emit: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasErrors() || res.Output != nil {
		t.Fatalf("codes = %v, output = %q", res.Bag.Codes(), res.Output)
	}
	for _, d := range res.Bag.Items() {
		if !strings.HasPrefix(d.Code.ID(), "SYN") && !strings.HasPrefix(d.Code.ID(), "LEX") {
			t.Fatalf("unexpected %s after parse error", d.Code.ID())
		}
	}
}

func TestRunFileMissing(t *testing.T) {
	res, err := RunFile(context.Background(), source.NewFileSet(), filepath.Join(t.TempDir(), "nope.nm"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := codeIDs(res.Bag); !slices.Equal(got, []string{"IO4001"}) {
		t.Fatalf("codes = %v", got)
	}
}

func TestRunFileTimings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.nm", rewriteSrc)
	res, err := RunFile(context.Background(), source.NewFileSet(), path, Options{Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.ObsTimings || items[0].Severity != diag.SevInfo {
		t.Fatalf("codes = %v", res.Bag.Codes())
	}
	var payload timingPayload
	if err := json.Unmarshal([]byte(items[0].Notes[0].Msg), &payload); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range payload.Phases {
		names = append(names, p.Name)
	}
	if payload.Path != path || !slices.Equal(names, []string{"load", "parse", "analyze", "rewrite"}) {
		t.Fatalf("payload = %+v", payload)
	}
	if res.HasErrors() {
		t.Fatal("timings must not count as errors")
	}
}

func TestRunFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.nm", rewriteSrc),
		writeFile(t, dir, "b.nm", abandonSrc),
		writeFile(t, dir, "c.nm", rewriteSrc),
	}
	var (
		mu     sync.Mutex
		final  = map[string]Status{}
		queued int
	)
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		switch ev.Status {
		case StatusQueued:
			queued++
		case StatusDone, StatusError, StatusCached:
			final[ev.File] = ev.Status
		}
	})

	results, err := RunFiles(context.Background(), source.NewFileSet(), paths, Options{Jobs: 2, Sink: sink})
	if err != nil {
		t.Fatal(err)
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Fatalf("result %d is %s, want %s", i, res.Path, paths[i])
		}
	}
	if queued != 3 {
		t.Fatalf("queued events = %d", queued)
	}
	want := map[string]Status{paths[0]: StatusDone, paths[1]: StatusError, paths[2]: StatusDone}
	for p, s := range want {
		if final[p] != s {
			t.Fatalf("%s finished with %q, want %q", p, final[p], s)
		}
	}
}

func TestRunFilesEmpty(t *testing.T) {
	results, err := RunFiles(context.Background(), source.NewFileSet(), nil, Options{})
	if err != nil || results != nil {
		t.Fatalf("results = %v, err = %v", results, err)
	}
}

func TestResultCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewResultCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	good := writeFile(t, dir, "p.nm", rewriteSrc)
	bad := writeFile(t, dir, "q.nm", abandonSrc)
	opts := Options{Emit: true, Cache: cache}

	run := func(path string, opts Options) *FileResult {
		t.Helper()
		res, err := RunFile(context.Background(), source.NewFileSet(), path, opts)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	first := run(good, opts)
	second := run(good, opts)
	if first.Cached || !second.Cached {
		t.Fatalf("cached: first=%t second=%t", first.Cached, second.Cached)
	}
	if string(second.Output) != string(first.Output) || second.Report != first.Report {
		t.Fatalf("cached result differs: %+v vs %+v", second.Report, first.Report)
	}

	run(bad, opts)
	replay := run(bad, opts)
	if !replay.Cached || !slices.Equal(replay.Bag.Codes(), run(bad, Options{Emit: true}).Bag.Codes()) {
		t.Fatalf("replayed codes = %v", replay.Bag.Codes())
	}
	if n := replay.Bag.Items()[0].Primary.File; n != replay.FileID {
		t.Fatalf("span bound to file %d, want %d", n, replay.FileID)
	}

	skip := opts
	skip.SkipRewrite = true
	if run(good, skip).Cached {
		t.Fatal("different settings must miss")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if run(good, opts).Cached {
		t.Fatal("hit after DropAll")
	}
}

func TestKey(t *testing.T) {
	a := Key([]byte("x"), "f1")
	if a != Key([]byte("x"), "f1") {
		t.Fatal("key is not stable")
	}
	if a == Key([]byte("x"), "f2") || a == Key([]byte("xf"), "1") {
		t.Fatal("key collision")
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.nm", "sub/b.nm", "gen/c.nm", ".hidden/d.nm", "skip.nm", "notes.txt"} {
		writeFile(t, dir, name, "")
	}
	writeFile(t, dir, ".namedignore", "# generated\ngen/\nskip.nm\n")

	got, err := Discover(dir, ".namedignore")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.nm"), filepath.Join(dir, "sub", "b.nm")}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	all, err := Discover(dir, "missing-ignore")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("without ignore file: %v", all)
	}

	single, err := Discover(filepath.Join(dir, "notes.txt"), "")
	if err != nil || !slices.Equal(single, []string{filepath.Join(dir, "notes.txt")}) {
		t.Fatalf("single = %v, err = %v", single, err)
	}
}
