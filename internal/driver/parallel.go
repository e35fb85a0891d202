package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"named/internal/source"
	"named/internal/trace"
)

// RunFiles runs every path through RunFile on a bounded worker pool.
// Results keep the order of paths regardless of completion order. The first
// pipeline error cancels the remaining files.
func RunFiles(ctx context.Context, fs *source.FileSet, paths []string, opts Options) ([]*FileResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "run_files")
	span.WithExtra("files", strconv.Itoa(len(paths)))
	defer span.End("")

	for _, p := range paths {
		emit(opts.Sink, Event{File: p, Status: StatusQueued})
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := RunFile(gctx, fs, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o Options) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	if j := o.config().Driver.Jobs; j > 0 {
		return j
	}
	return runtime.GOMAXPROCS(0)
}
