package app

import (
	"time"

	"github.com/bft-labs/pagemark/pkg/log"
)

// Option configures optional behavior of the bookkeeping passes.
type Option func(*options)

type options struct {
	logger       log.Logger
	previewDelay time.Duration
	observer     StateObserver
}

func buildOptions(opts []Option) options {
	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	return o
}

// WithLogger sets the diagnostic sink.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPreviewDelay makes Run wait d after placing the preview annotation and
// before asking the operator, so the preview can be inspected first.
func WithPreviewDelay(d time.Duration) Option {
	return func(o *options) {
		o.previewDelay = d
	}
}

// WithStateObserver registers an observer for workflow state changes.
// The observer is called synchronously from the goroutine driving the workflow.
func WithStateObserver(observer StateObserver) Option {
	return func(o *options) {
		o.observer = observer
	}
}
