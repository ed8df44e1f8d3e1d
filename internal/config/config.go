// Package config carries the assignability engine's configuration
// switches, threaded through every call as an explicit, immutable value
// rather than process-wide mutable globals: the engine must stay
// side-effect-free and reentrant, which package-level mutable state
// would break.
package config

// Config is passed by value to every Assign call.
type Config struct {
	// StrictNullChecks, when true, restricts undefined/null assignability
	// to any/unknown and matching keywords. The zero value, false, is the
	// permissive default.
	StrictNullChecks bool

	// MaxRecursionDepth bounds recursive Assign calls against pathological
	// input. Zero means unlimited.
	MaxRecursionDepth int

	// TraceQueries, when set, makes cmd/shapec tag each top-level query
	// with a trace ID and print it with that query's result.
	// internal/rpcservice does not read this field, and internal/types
	// never reads it either — tracing is an ambient concern layered on top
	// of the pure engine, never inside it.
	TraceQueries bool
}

// Default returns the permissive configuration: non-strict null checks,
// no recursion limit, no tracing.
func Default() Config {
	return Config{}
}
