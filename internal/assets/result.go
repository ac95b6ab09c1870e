// Package assets implements the resilient, fallback-backed loading of
// external resources such as the car model and the environment panorama.
package assets

import (
	"errors"
	"time"
)

var (
	// ErrTimeout is reported when a load did not finish in time.
	ErrTimeout = errors.New("asset load timed out")
	// ErrExhausted is reported when every strategy failed.
	ErrExhausted = errors.New("all load strategies failed")
	// ErrNoStrategies is reported by a loader configured without strategies.
	ErrNoStrategies = errors.New("no load strategies configured")
)

// Source records how a load reached its terminal state.
type Source int

const (
	SourceFetched Source = iota
	SourceTimeoutFallback
	SourceErrorFallback
)

func (s Source) String() string {
	switch s {
	case SourceFetched:
		return "fetched"
	case SourceTimeoutFallback:
		return "timeout-fallback"
	case SourceErrorFallback:
		return "error-fallback"
	default:
		return "unknown"
	}
}

// Result is the single terminal outcome of a load. Err is nil only when
// Source is SourceFetched.
type Result[T any] struct {
	Asset   T
	Source  Source
	Err     error
	Elapsed time.Duration
}

// Fallback reports whether Asset is a substitute.
func (r Result[T]) Fallback() bool {
	return r.Source != SourceFetched
}
