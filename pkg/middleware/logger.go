package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*loggerOptions)

type loggerOptions struct {
	logger       *slog.Logger
	skipPrefixes []string
}

// WithLogger sends request records to logger instead of slog.Default().
func WithLogger(logger *slog.Logger) LoggerOpts {
	return func(o *loggerOptions) {
		o.logger = logger
	}
}

// WithSkipPrefixes does not log successful requests whose path starts with any prefix.
// Failed requests are always logged.
func WithSkipPrefixes(prefixes ...string) LoggerOpts {
	return func(o *loggerOptions) {
		o.skipPrefixes = append(o.skipPrefixes, prefixes...)
	}
}

func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	o := loggerOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger := o.logger
			if logger == nil {
				logger = slog.Default()
			}
			ctx := c.Request().Context()

			if v.Error != nil {
				logger.LogAttrs(ctx, slog.LevelError, "REQUEST_ERROR",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Duration("latency", v.Latency),
					slog.String("err", v.Error.Error()),
				)
				return nil
			}
			if o.skip(c.Path()) {
				return nil
			}
			logger.LogAttrs(ctx, slog.LevelInfo, "REQUEST",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

func (o loggerOptions) skip(path string) bool {
	for _, p := range o.skipPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
