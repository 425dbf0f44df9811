package blockpool

import (
	"io"
	"log/slog"
)

// Mode selects what the pool does on a fault.
type Mode int

const (
	// ModeStrict panics on faults.
	ModeStrict Mode = iota

	// ModePermissive logs faults, hands them to the fault handler and
	// fails the call instead.
	ModePermissive
)

// String ...
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModePermissive:
		return "permissive"
	default:
		return "unknown"
	}
}

// Option configures a Pool.
type Option func(*poolConfig)

type poolConfig struct {
	mode        Mode
	logger      *slog.Logger
	onFault     func(error)
	mappedArena bool
}

func defaultPoolConfig() poolConfig {
	return poolConfig{
		mode:   ModeStrict,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithMode ...
func WithMode(mode Mode) Option {
	return func(c *poolConfig) {
		c.mode = mode
	}
}

// WithLogger sets the logger for initialization and fault events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *poolConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFaultHandler is called with every fault in ModePermissive.
func WithFaultHandler(fn func(err error)) Option {
	return func(c *poolConfig) {
		c.onFault = fn
	}
}

// WithMappedArena backs the arena with an anonymous memory mapping instead
// of the Go heap. Only available on unix platforms; Init fails elsewhere.
func WithMappedArena() Option {
	return func(c *poolConfig) {
		c.mappedArena = true
	}
}
