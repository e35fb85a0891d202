package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"named/internal/diag"
	"named/internal/named"
	"named/internal/source"
)

// Current schema version - increment when CachedResult format changes
const cacheSchemaVersion uint16 = 1

// CacheKey is sha256 over file content and the settings fingerprint.
type CacheKey [sha256.Size]byte

func (k CacheKey) String() string { return hex.EncodeToString(k[:]) }

// ResultCache хранит результаты проверки файлов на диске, по одному
// msgpack-файлу на ключ. Thread-safe for concurrent access.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
	Notes    []CachedNote
}

// CachedResult is everything RunFile needs to replay a file without
// parsing it. Spans are stored without a FileID and rebound on load.
type CachedResult struct {
	Schema      uint16
	Path        string
	Diagnostics []CachedDiagnostic

	Rewritten  int
	Abandoned  int
	Fallbacks  int
	Defaults   int
	Named      int
	Replayed   int
	Discarded  int
	Reanalyzed int

	Output []byte
}

// OpenResultCache opens $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenResultCache(app string) (*ResultCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewResultCache(filepath.Join(base, app))
}

func NewResultCache(dir string) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

func (c *ResultCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key derives the cache key of a file.
func Key(content []byte, fingerprint string) CacheKey {
	h := sha256.New()
	_, _ = h.Write(content)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(fingerprint))
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

func (c *ResultCache) pathFor(key CacheKey) string {
	// подкаталог "results" - чтобы было проще чистить
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Put serializes and writes a result to the cache.
func (c *ResultCache) Put(key CacheKey, res *CachedResult) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	res.Schema = cacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(res); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a result. Entries of another schema version count as misses.
func (c *ResultCache) Get(key CacheKey) (*CachedResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var out CachedResult
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, false, err
	}
	if out.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll invalidates the cache.
func (c *ResultCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func toCached(res *FileResult) *CachedResult {
	out := &CachedResult{
		Path:       res.Path,
		Rewritten:  res.Report.Rewritten,
		Abandoned:  res.Report.Abandoned,
		Fallbacks:  res.Report.Fallbacks,
		Defaults:   res.Report.Defaults,
		Named:      res.Report.Named,
		Replayed:   res.Report.Replayed,
		Discarded:  res.Report.Discarded,
		Reanalyzed: res.Report.Reanalyzed,
		Output:     res.Output,
	}
	items := res.Bag.Items()
	out.Diagnostics = make([]CachedDiagnostic, len(items))
	for i, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		out.Diagnostics[i] = cd
	}
	return out
}

// fromCached fills res from a cache entry, binding spans to file.
func fromCached(res *FileResult, c *CachedResult, file source.FileID) {
	res.Report = named.Report{
		Stats: named.Stats{
			Rewritten: c.Rewritten,
			Abandoned: c.Abandoned,
			Fallbacks: c.Fallbacks,
			Defaults:  c.Defaults,
			Named:     c.Named,
		},
		Replayed:   c.Replayed,
		Discarded:  c.Discarded,
		Reanalyzed: c.Reanalyzed,
	}
	res.Output = c.Output
	for _, cd := range c.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: file, Start: n.Start, End: n.End}, n.Msg)
		}
		res.Bag.Add(d)
	}
}
