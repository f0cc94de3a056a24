package glove

import (
	"go.uber.org/zap"

	"hapticglove/core"
)

// Option configures a Controller
type Option func(*Controller)

// WithClock sets the time source used for suppression windows
func WithClock(clock core.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithLogger sets the logger for transport warnings
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithOpener sets how sinks are opened from port ids
func WithOpener(opener SinkOpener) Option {
	return func(c *Controller) {
		c.opener = opener
	}
}
