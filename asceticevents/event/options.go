package event

import (
	"log/slog"

	"github.com/krew-solutions/ascetic-events-go/asceticevents/metrics"
)

type options struct {
	name    string
	logger  *slog.Logger
	metrics metrics.Recorder
}

type Option func(*options)

// WithName names the event in logs and metrics. Defaults to the payload type.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics defaults to metrics.Nop.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = recorder
	}
}
