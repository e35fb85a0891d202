package driver

import (
	"named/internal/config"
	"named/internal/diag"
	"named/internal/named"
)

// Options configure a file run. The zero value uses config.Default().
type Options struct {
	Config config.Config
	// MaxDiagnostics overrides Config.Diagnostics.Max when positive.
	MaxDiagnostics int
	// Jobs overrides Config.Driver.Jobs when positive.
	Jobs int
	// SkipRewrite opens and closes the capture window without rewriting.
	SkipRewrite bool
	// Emit renders rewritten units back to source into FileResult.Output.
	Emit bool
	// MarkDefaults annotates synthesized default arguments in the output.
	MarkDefaults bool
	// Timings appends an OBS6001 info diagnostic with phase durations.
	Timings bool
	Cache   *ResultCache
	Sink    ProgressSink
}

func (o Options) config() config.Config {
	if o.Config.Marker.Name == "" {
		return config.Default()
	}
	return o.Config
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	if m := o.config().Diagnostics.Max; m > 0 {
		return m
	}
	return int(^uint16(0))
}

func (o Options) engineOptions() (named.Options, error) {
	eo, err := o.config().EngineOptions()
	if err != nil {
		return named.Options{}, err
	}
	eo.SkipRewrite = o.SkipRewrite
	return eo, nil
}

// hostReporter builds the sink every diagnostic of a unit ends in.
func (o Options) hostReporter(bag *diag.Bag) diag.Reporter {
	var r diag.Reporter = &diag.BagReporter{Bag: bag}
	if o.config().Diagnostics.Dedup {
		r = diag.NewDedupReporter(r)
	}
	return r
}
