package named

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/trace"
)

// Report summarises one OnPhaseEnd.
type Report struct {
	Stats
	Replayed   int
	Discarded  int
	Reanalyzed int
}

// Plugin wires the resolver into a host's analysis lifecycle.
type Plugin struct {
	opts Options
}

func NewPlugin(opts Options) *Plugin {
	return &Plugin{opts: opts}
}

// OnPhaseStart opens the capture window of the unit's diagnostic context.
// Call it before the host's first analysis pass.
func (p *Plugin) OnPhaseStart(u *Unit) error {
	if err := u.Diag.Suppressor().EnterCapture(); err != nil {
		return fmt.Errorf("phase start: %w", err)
	}
	return nil
}

// OnPhaseEnd rewrites every call of the unit, closes the capture window and
// reanalyses the declarations that changed. The window is closed on every
// path, panics included.
func (p *Plugin) OnPhaseEnd(ctx context.Context, u *Unit) (Report, error) {
	var rep Report
	sup := u.Diag.Suppressor()
	if !sup.Capturing() {
		return rep, fmt.Errorf("phase end: %w", diag.ErrNotCapturing)
	}
	defer sup.Release()

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeUnit, "named_rewrite", trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	before := sup.Stats()

	var affected []ast.DeclID
	if !p.opts.SkipRewrite {
		res := NewResolver(u, p.opts)
		for _, decl := range u.AST.Members(u.ID) {
			changed := false
			for _, call := range u.AST.CallsPostOrder(decl) {
				if _, err := res.Resolve(ctx, call); err != nil {
					span.End("error")
					return rep, err
				}
				changed = changed || res.Modified(call)
			}
			if changed {
				affected = append(affected, decl)
			}
		}
		rep.Stats = res.Stats()
	}

	replayed, err := sup.ExitCapture()
	if err != nil {
		span.End("error")
		return rep, fmt.Errorf("phase end: %w", err)
	}
	after := sup.Stats()
	rep.Replayed = replayed
	rep.Discarded = after.Discarded - before.Discarded

	var errs []error
	for _, decl := range affected {
		if err := u.Host.Reanalyze(ctx, decl); err != nil {
			errs = append(errs, fmt.Errorf("reanalyze decl %d: %w", decl, err))
			continue
		}
		rep.Reanalyzed++
	}

	span.WithExtra("rewritten", strconv.Itoa(rep.Rewritten)).
		WithExtra("abandoned", strconv.Itoa(rep.Abandoned)).
		WithExtra("replayed", strconv.Itoa(rep.Replayed)).
		WithExtra("discarded", strconv.Itoa(rep.Discarded)).
		End("")
	return rep, errors.Join(errs...)
}
