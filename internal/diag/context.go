package diag

import "named/internal/source"

// Context is the diagnostic handle of one compilation unit. All phases report
// through it; the actual destination is the current sink, which is the host
// sink outside a capture window and the suppressor's queue inside one.
type Context struct {
	host Reporter
	sink Reporter
	sup  *Suppressor
}

func NewContext(host Reporter) *Context {
	c := &Context{host: host, sink: host}
	c.sup = &Suppressor{ctx: c}
	return c
}

// Report forwards to the current sink.
func (c *Context) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if c == nil || c.sink == nil {
		return
	}
	c.sink.Report(code, sev, primary, msg, notes)
}

// Host returns the sink diagnostics reach outside a capture window.
func (c *Context) Host() Reporter { return c.host }

// Suppressor returns the single suppressor owned by this context.
func (c *Context) Suppressor() *Suppressor { return c.sup }

func (c *Context) swap(r Reporter) Reporter {
	prev := c.sink
	c.sink = r
	return prev
}
