package named

import (
	"fmt"
	"strings"
)

// DefaultSentinel is the marker value meaning "no explicit default".
const DefaultSentinel = "<default>"

// FallbackPolicy decides what happens when no overload scores above zero.
type FallbackPolicy uint8

const (
	// FallbackFirst accepts the first member with the call's name.
	FallbackFirst FallbackPolicy = iota
	// FallbackAbandon gives the call back to the host instead of guessing.
	FallbackAbandon
)

func (p FallbackPolicy) String() string {
	switch p {
	case FallbackFirst:
		return "first"
	case FallbackAbandon:
		return "abandon"
	}
	return "unknown"
}

func ParseFallback(s string) (FallbackPolicy, error) {
	switch strings.ToLower(s) {
	case "", "first":
		return FallbackFirst, nil
	case "abandon":
		return FallbackAbandon, nil
	}
	return FallbackFirst, fmt.Errorf("invalid rematch fallback: %q (expected: first|abandon)", s)
}

type Options struct {
	// Sentinel is the marker value treated as "unset"; empty means DefaultSentinel.
	Sentinel string
	Fallback FallbackPolicy
	// SkipRewrite keeps the capture window but rewrites nothing.
	SkipRewrite bool
}

func (o Options) sentinel() string {
	if o.Sentinel == "" {
		return DefaultSentinel
	}
	return o.Sentinel
}
