package engine

import "errors"

var (
	ErrNoListSelected  = errors.New("engine: no word list selected")
	ErrUnknownList     = errors.New("engine: unknown word list")
	ErrInvalidCategory = errors.New("engine: category must be 0 or 1")
	ErrInvalidMode     = errors.New("engine: unknown mode")
	ErrNotActive       = errors.New("engine: session is not active")
	ErrClosed          = errors.New("engine: closed")

	// ErrMeasurementUnavailable is returned by a Measurer that cannot size
	// text yet. The engine falls back to Config.DefaultWidth.
	ErrMeasurementUnavailable = errors.New("engine: text measurement unavailable")
)
