// Package assign is the minimal embeddable entry point for host programs
// that already have elaborated types.Type values and want to check
// assignability without pulling in the CLI, cache, or RPC machinery.
package assign

import (
	"github.com/shapelang/shapec/internal/config"
	"github.com/shapelang/shapec/internal/types"
)

// Option configures a Check call.
type Option func(*config.Config)

// WithStrictNullChecks enables Phase C.1's strict null-checks mode,
// rejecting null/undefined against non-nullable keywords.
func WithStrictNullChecks() Option {
	return func(c *config.Config) { c.StrictNullChecks = true }
}

// WithMaxRecursionDepth bounds recursive Assign calls.
func WithMaxRecursionDepth(n int) Option {
	return func(c *config.Config) { c.MaxRecursionDepth = n }
}

// Check decides whether a value of type r may be used where l is
// expected, at the given source location.
func Check(l, r types.Type, loc types.SourceLoc, opts ...Option) error {
	cfg := config.Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return types.Assign(l, r, loc, cfg)
}
