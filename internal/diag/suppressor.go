package diag

import (
	"errors"

	"named/internal/source"
)

var (
	// ErrAlreadyCapturing is returned by EnterCapture when a window is open.
	ErrAlreadyCapturing = errors.New("diag: capture window already open")
	// ErrNotCapturing is returned by ExitCapture without an open window.
	ErrNotCapturing = errors.New("diag: no capture window open")
)

// Pending is a diagnostic held back during a capture window.
type Pending struct {
	Seq        uint32
	Diagnostic Diagnostic
	Resolved   bool
}

type SuppressorStats struct {
	Captured  int
	Discarded int
	Replayed  int
}

// Suppressor defers diagnostics of its Context. States: normal -> capturing
// -> normal. Pending records are keyed by sequence number and located by
// primary span, which identifies the originating node.
type Suppressor struct {
	ctx     *Context
	active  bool
	saved   Reporter
	pending []Pending
	seq     uint32
	stats   SuppressorStats
}

type captureSink struct{ s *Suppressor }

func (c captureSink) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	s := c.s
	s.seq++
	s.pending = append(s.pending, Pending{
		Seq: s.seq,
		Diagnostic: Diagnostic{
			Severity: sev, Code: code, Message: msg,
			Primary: primary, Notes: notes,
		},
	})
	s.stats.Captured++
}

// EnterCapture replaces the context sink with the capturing queue.
func (s *Suppressor) EnterCapture() error {
	if s.active {
		return ErrAlreadyCapturing
	}
	s.active = true
	s.pending = s.pending[:0]
	s.saved = s.ctx.swap(captureSink{s: s})
	return nil
}

// Capturing reports whether a window is open.
func (s *Suppressor) Capturing() bool { return s.active }

// MarkResolved flags every unresolved pending record whose primary span is sp.
// Returns the number of records flagged; zero is not an error.
func (s *Suppressor) MarkResolved(sp source.Span) int {
	n := 0
	for i := range s.pending {
		p := &s.pending[i]
		if p.Resolved || p.Diagnostic.Primary != sp {
			continue
		}
		p.Resolved = true
		n++
	}
	return n
}

// Pending returns a copy of the queue in capture order.
func (s *Suppressor) Pending() []Pending {
	out := make([]Pending, len(s.pending))
	copy(out, s.pending)
	return out
}

// ExitCapture restores the saved sink and replays every unresolved record in
// capture order. Resolved records are discarded.
func (s *Suppressor) ExitCapture() (int, error) {
	if !s.active {
		return 0, ErrNotCapturing
	}
	s.ctx.swap(s.saved)
	s.active = false
	replayed := 0
	for _, p := range s.pending {
		if p.Resolved {
			s.stats.Discarded++
			continue
		}
		Emit(s.saved, p.Diagnostic)
		replayed++
	}
	s.stats.Replayed += replayed
	s.pending = s.pending[:0]
	s.saved = nil
	return replayed, nil
}

// Release closes an open window, if any. Safe to defer on every path.
func (s *Suppressor) Release() {
	if s.active {
		_, _ = s.ExitCapture()
	}
}

// Capture runs fn inside a window and always closes it, even if fn panics.
func (s *Suppressor) Capture(fn func() error) (err error) {
	if err = s.EnterCapture(); err != nil {
		return err
	}
	defer func() {
		if _, exitErr := s.ExitCapture(); err == nil {
			err = exitErr
		}
	}()
	return fn()
}

func (s *Suppressor) Stats() SuppressorStats { return s.stats }
