// Package diag defines the diagnostic model shared by the lexer, parser,
// host analysis and the named-argument engine.
//
// # Data model
//
// Diagnostic is the central record: Severity, Code (see codes.go), Message,
// Primary span and optional Notes. Producers emit through a Reporter; the
// BagReporter collects into a bounded Bag and DedupReporter drops repeats of
// the same code/span/message.
//
// # Capture window
//
// Context is the explicit diagnostic handle of one compilation unit. Every
// phase reports into the Context, which forwards to its current sink. The
// Context owns exactly one Suppressor. While the suppressor is capturing,
// diagnostics are queued as Pending records instead of reaching the host
// sink. The named-argument engine marks queued records as resolved when
// they were caused only by `name = value` syntax; ExitCapture restores the
// host sink and replays, in capture order, every record that was not marked.
//
//	sup := dctx.Suppressor()
//	if err := sup.EnterCapture(); err != nil { ... }
//	defer sup.Release()
//	... analysis, rewriting, sup.MarkResolved(span) ...
//	replayed, err := sup.ExitCapture()
package diag
