package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/format"
	"named/internal/lexer"
	"named/internal/named"
	"named/internal/observ"
	"named/internal/parser"
	"named/internal/sema"
	"named/internal/source"
	"named/internal/trace"
)

// FileResult is the outcome of running one file through the pipeline.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Report named.Report
	// Output is the unit rendered back to source; set only with Options.Emit
	// and a clean parse.
	Output []byte
	Cached bool
	Timing observ.Report
}

func (r *FileResult) HasErrors() bool { return r.Bag.HasErrors() }

// Changed reports whether the rewriter replaced any argument list.
func (r *FileResult) Changed() bool { return r.Report.Rewritten > 0 }

// RunFile loads path into fs and runs it through lexer, parser, the first
// semantic pass inside the capture window and the rewriter. User errors end
// up in the result's bag; the returned error is reserved for pipeline misuse.
func RunFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*FileResult, error) {
	engine, err := opts.engineOptions()
	if err != nil {
		return nil, err
	}
	cfg := opts.config()
	begin := time.Now()
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "file")
	span.WithExtra("path", path)

	res := &FileResult{Path: path, Bag: diag.NewBag(opts.maxDiagnostics())}
	timer := observ.NewTimer()
	status := StatusDone
	defer func() {
		res.Timing = timer.Report()
		if opts.Timings {
			appendTimingDiagnostic(res.Bag, res.Path, res.Timing)
		}
		if status == StatusDone && res.HasErrors() {
			status = StatusError
		}
		span.End(string(status))
		emit(opts.Sink, Event{File: path, Status: status, Elapsed: time.Since(begin)})
	}()
	working := func(s Stage) {
		emit(opts.Sink, Event{File: path, Stage: s, Status: StatusWorking})
	}

	working(StageLoad)
	done := timer.Track("load")
	id, err := fs.Load(path)
	done("")
	if err != nil {
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
		return res, nil
	}
	res.FileID = id
	sf := fs.Get(id)

	key := Key(sf.Content, opts.fingerprint())
	if cached, ok, err := opts.Cache.Get(key); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "cache_error", err.Error(), span.ID())
	} else if ok {
		fromCached(res, cached, id)
		res.Cached = true
		status = StatusCached
		return res, nil
	}

	working(StageParse)
	done = timer.Track("parse")
	dctx := diag.NewContext(opts.hostReporter(res.Bag))
	b := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(
		lexer.New(sf, lexer.Options{Reporter: dctx}), b,
		parser.Options{Reporter: dctx, MaxErrors: uint(opts.maxDiagnostics())},
	)
	done("")
	// разбор с ошибками не анализируем: дерево неполное
	if res.HasErrors() {
		opts.store(ctx, key, res)
		return res, nil
	}

	working(StageAnalyze)
	done = timer.Track("analyze")
	u := &named.Unit{ID: parsed.Unit, AST: b, Diag: dctx}
	plugin := named.NewPlugin(engine)
	if err := plugin.OnPhaseStart(u); err != nil {
		status = StatusError
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	checker := sema.Analyze(ctx, b, parsed.Unit, sema.Options{Reporter: dctx, Marker: cfg.Marker.Name})
	u.Symbols, u.Bindings, u.Types, u.Host = checker.Symbols(), checker.Bindings(), checker.Types(), checker
	done("")

	working(StageRewrite)
	done = timer.Track("rewrite")
	rep, err := plugin.OnPhaseEnd(ctx, u)
	done(strconv.Itoa(rep.Rewritten) + " rewritten")
	res.Report = rep
	if err != nil {
		status = StatusError
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if opts.Emit {
		done = timer.Track("format")
		out, err := format.Unit(sf, b, parsed.Unit, format.Options{MarkDefaults: opts.MarkDefaults})
		done("")
		if err != nil {
			status = StatusError
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		res.Output = out
	}
	opts.store(ctx, key, res)
	return res, nil
}

func (o Options) fingerprint() string {
	return fmt.Sprintf("%s;limit=%d;skip=%t;emit=%t;mark=%t",
		o.config().Fingerprint(), o.maxDiagnostics(), o.SkipRewrite, o.Emit, o.MarkDefaults)
}

// store traces cache write failures instead of returning them.
func (o Options) store(ctx context.Context, key CacheKey, res *FileResult) {
	if o.Cache == nil {
		return
	}
	if err := o.Cache.Put(key, toCached(res)); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "cache_error", res.Path+": "+err.Error(), trace.CurrentSpan(ctx).SpanID)
	}
}
