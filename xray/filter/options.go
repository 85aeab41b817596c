package filter

import (
	"github.com/go-logr/logr"

	"github.com/cwbudde/algo-xfilter/xray/interp"
)

// Options controls a transmission computation.
type Options struct {
	Mode   interp.Mode
	Logger logr.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns log-log interpolation with logging disabled.
func DefaultOptions() Options {
	return Options{
		Mode:   interp.ModeLogLog,
		Logger: logr.Discard(),
	}
}

// WithMode selects the interpolation strategy for mu/rho.
func WithMode(mode interp.Mode) Option {
	return func(o *Options) {
		o.Mode = mode
	}
}

// WithLogger receives one V(1) line per layer, in stack order.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// ApplyOptions applies zero or more options to the defaults.
func ApplyOptions(opts ...Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
