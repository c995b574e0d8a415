package rangeslider

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RenderStrategy decides when the widget is constructed.
type RenderStrategy string

const (
	// RenderDeferred builds the widget on the first UpdateView call, once the
	// host container has its final layout.
	RenderDeferred RenderStrategy = "deferred"
	// RenderEager builds the widget inside Init.
	RenderEager RenderStrategy = "eager"
)

// WrapperClass is set on the element that carries the outer padding.
const WrapperClass = "range-slider-wrapper"

// Options configures a Control.
type Options struct {
	Factory  Factory
	Strategy RenderStrategy
	Logger   *logrus.Entry
	IDFunc   func() string

	// KeepLastOnNaN keeps the previous value when the widget reports a value
	// that does not parse as a number. The notifier still fires.
	KeepLastOnNaN bool
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the baseline configuration without a widget factory.
func DefaultOptions() Options {
	return Options{
		Strategy: RenderDeferred,
		IDFunc:   defaultID,
	}
}

// NewOptions applies fns over DefaultOptions and fills any blanks.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Strategy != RenderEager {
		opts.Strategy = RenderDeferred
	}
	if opts.IDFunc == nil {
		opts.IDFunc = defaultID
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	opts.Logger = opts.Logger.WithField("component", "rangeslider")
	return opts
}

// WithFactory sets the widget factory.
func WithFactory(factory Factory) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Factory = factory
	}
}

// WithStrategy selects eager or deferred rendering.
func WithStrategy(strategy RenderStrategy) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Strategy = strategy
	}
}

// WithLogger sets the log entry used by the control.
func WithLogger(logger *logrus.Entry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithIDFunc overrides how mount element ids are generated.
func WithIDFunc(fn func() string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.IDFunc = fn
	}
}

// WithKeepLastOnNaN enables the NaN guard on the update path.
func WithKeepLastOnNaN(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.KeepLastOnNaN = enabled
	}
}

func defaultID() string {
	return "range-slider-" + uuid.NewString()
}
