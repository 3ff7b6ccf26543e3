package arena

import (
	"github.com/go-kit/log"
)

// Option configures a LinearAllocator.
type Option func(*options)

type options struct {
	logger         log.Logger
	metrics        *Metrics
	fatal          FatalHandler
	releaseOnReset bool
}

func defaultOptions() options {
	return options{
		logger: log.NewNopLogger(),
		fatal:  PanicOnFatal,
	}
}

// WithLogger sets the logger used for commit, decommit and failure events.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics attaches prometheus metrics. See NewMetrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithFatalHandler replaces PanicOnFatal.
func WithFatalHandler(h FatalHandler) Option {
	return func(o *options) {
		if h != nil {
			o.fatal = h
		}
	}
}

// WithReleaseOnReset makes Reset also decommit every committed page.
func WithReleaseOnReset(enabled bool) Option {
	return func(o *options) { o.releaseOnReset = enabled }
}
