package named

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"named/internal/ast"
	"named/internal/source"
	"named/internal/symbols"
	"named/internal/trace"
)

type Outcome uint8

const (
	// Rewritten: the call now has a positional, arity-correct argument list
	// and a pinned binding.
	Rewritten Outcome = iota + 1
	// Abandoned: the call is left to the host's own diagnostics.
	Abandoned
)

func (o Outcome) String() string {
	switch o {
	case Rewritten:
		return "rewritten"
	case Abandoned:
		return "abandoned"
	}
	return "unknown"
}

// Stats counts resolver decisions within one pass.
type Stats struct {
	Rewritten int
	Abandoned int
	Fallbacks int
	Defaults  int
	Named     int
}

// Resolver rewrites the argument lists of one unit. It is single-pass: a
// call may be resolved at most once per Resolver.
type Resolver struct {
	u         *Unit
	opts      Options
	defaults  *Defaults
	rematcher *Rematcher
	done      map[ast.ExprID]struct{}
	modified  map[ast.ExprID]struct{}
	stats     Stats
}

func NewResolver(u *Unit, opts Options) *Resolver {
	return &Resolver{
		u:         u,
		opts:      opts,
		defaults:  NewDefaults(u, opts.sentinel()),
		rematcher: NewRematcher(u),
		done:      make(map[ast.ExprID]struct{}),
		modified:  make(map[ast.ExprID]struct{}),
	}
}

func (r *Resolver) Stats() Stats { return r.stats }

// Modified reports whether the call's syntax changed (rewrite or unwrap).
func (r *Resolver) Modified(call ast.ExprID) bool {
	_, ok := r.modified[call]
	return ok
}

// Resolve rewrites a single call or `new` expression.
func (r *Resolver) Resolve(ctx context.Context, call ast.ExprID) (Outcome, error) {
	data, ok := r.u.AST.Exprs.Call(call)
	if !ok {
		return 0, fmt.Errorf("resolve expr %d: %w", call, ErrNotCall)
	}
	if _, seen := r.done[call]; seen {
		return 0, fmt.Errorf("resolve expr %d: %w", call, ErrAlreadyRewritten)
	}
	r.done[call] = struct{}{}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeNode, "resolve_call", trace.CurrentSpan(ctx).SpanID).
		WithExtra("call", r.u.AST.Strings.MustLookup(data.Name))

	args := classify(r.u.AST.Exprs, data.Args)
	outcome := r.resolve(ctx, call, args)
	switch outcome {
	case Rewritten:
		r.stats.Rewritten++
	case Abandoned:
		r.stats.Abandoned++
		r.abandon(call, args)
	}
	span.End(outcome.String())
	return outcome, nil
}

// slot is an argument value with its position in the written list.
type slot struct {
	pos  int
	expr ast.ExprID
}

func (r *Resolver) resolve(ctx context.Context, call ast.ExprID, args []Argument) Outcome {
	callee, rebound, ok := r.callee(ctx, call, args)
	if !ok {
		return Abandoned
	}
	params, hasDecl := r.u.paramsOf(callee)
	if !hasDecl {
		return Abandoned
	}

	// разбиение: именованные значения по имени, остальные в очередь
	bucket := make(map[source.StringID][]slot)
	refs := make(map[source.StringID][]ast.ExprID)
	queue := make([]slot, 0, len(args))
	for i, a := range args {
		if r.u.isNamed(a) {
			bucket[a.Name] = append(bucket[a.Name], slot{pos: i, expr: a.Value})
			refs[a.Name] = append(refs[a.Name], a.NameRef)
			continue
		}
		queue = append(queue, slot{pos: i, expr: a.Expr})
	}

	callSpan := r.u.AST.Exprs.Get(call).Span
	at := source.Span{File: callSpan.File, Start: callSpan.End, End: callSpan.End}
	out := make([]ast.ExprID, 0, len(params))
	var consumed []source.StringID
	defaults := 0
	for _, p := range params {
		if p.Variadic {
			named := bucket[p.Name]
			delete(bucket, p.Name)
			if len(named) > 0 {
				consumed = append(consumed, p.Name)
			}
			for _, v := range mergeByPos(queue, named) {
				out = append(out, v.expr)
			}
			queue = queue[:0]
			continue
		}
		if vals := bucket[p.Name]; len(vals) > 0 {
			out = append(out, vals[0].expr)
			if len(vals) == 1 {
				delete(bucket, p.Name)
			} else {
				bucket[p.Name] = vals[1:]
			}
			consumed = append(consumed, p.Name)
			continue
		}
		if len(queue) > 0 {
			out = append(out, queue[0].expr)
			queue = queue[1:]
			continue
		}
		if def, ok := r.defaults.DefaultFor(p, at); ok {
			out = append(out, def)
			defaults++
			continue
		}
		// обязательный параметр без значения
		return Abandoned
	}
	if len(bucket) > 0 || len(queue) > 0 {
		return Abandoned
	}

	sym := r.u.Symbols.Get(callee)
	data, _ := r.u.AST.Exprs.Call(call)
	if !slices.Equal(out, data.Args) {
		r.u.AST.Exprs.ReplaceCallArgs(call, out)
		r.modified[call] = struct{}{}
	}
	r.u.Bindings.Callee[call] = callee
	r.u.Bindings.Types[call] = sym.Signature.Result
	r.u.Bindings.Pin(call)
	r.stats.Defaults += defaults

	sup := r.u.Diag.Suppressor()
	if rebound {
		// overload failure of the host was about the written shape;
		// reanalysis re-checks the pinned call
		sup.MarkResolved(callSpan)
		r.modified[call] = struct{}{}
	}
	for _, name := range consumed {
		for _, ref := range refs[name] {
			sup.MarkResolved(r.u.AST.Exprs.Get(ref).Span)
			r.stats.Named++
		}
	}
	return Rewritten
}

// mergeByPos joins the positional and named values of a variadic tail in
// the order they were written.
func mergeByPos(queue, named []slot) []slot {
	out := make([]slot, 0, len(queue)+len(named))
	i, j := 0, 0
	for i < len(queue) && j < len(named) {
		if queue[i].pos < named[j].pos {
			out = append(out, queue[i])
			i++
		} else {
			out = append(out, named[j])
			j++
		}
	}
	out = append(out, queue[i:]...)
	return append(out, named[j:]...)
}

// callee takes the host binding, or rematches when the host bound the call
// to a class. rebound is set in the second case.
func (r *Resolver) callee(ctx context.Context, call ast.ExprID, args []Argument) (callee symbols.SymbolID, rebound, ok bool) {
	sym, ok := r.u.Host.ResolveSymbol(call)
	if !ok {
		return symbols.NoSymbolID, false, false
	}
	s := r.u.Symbols.Get(sym)
	switch {
	case s == nil:
		return symbols.NoSymbolID, false, false
	case s.Kind.IsCallable():
		return sym, false, true
	case s.Kind != symbols.SymbolClass:
		return symbols.NoSymbolID, false, false
	}
	cand, ok := r.rematcher.FindCandidate(call, args, sym)
	if !ok {
		return symbols.NoSymbolID, false, false
	}
	if cand.Fallback {
		r.stats.Fallbacks++
		trace.Point(trace.FromContext(ctx), trace.ScopeNode, "rematch_fallback",
			r.u.Symbols.NameOf(cand.Symbol)+" policy="+r.opts.Fallback.String()+
				" args="+strconv.Itoa(len(args)), trace.CurrentSpan(ctx).SpanID)
		if r.opts.Fallback == FallbackAbandon {
			return symbols.NoSymbolID, false, false
		}
	}
	return cand.Symbol, true, true
}

// abandon strips a partial binding (one pointing at the owner class) and
// unwraps named values so the host sees the call as if the names had not
// been written. A callable the host bound on its own is left alone.
func (r *Resolver) abandon(call ast.ExprID, args []Argument) {
	if sym, ok := r.u.Bindings.CalleeOf(call); !ok || !r.u.Symbols.Get(sym).Kind.IsCallable() {
		r.u.Bindings.Unbind(call)
	}
	plain := make([]ast.ExprID, len(args))
	changed := false
	for i, a := range args {
		plain[i] = r.u.unwrapped(a)
		changed = changed || plain[i] != a.Expr
	}
	if changed {
		r.u.AST.Exprs.ReplaceCallArgs(call, plain)
		r.modified[call] = struct{}{}
	}
}
