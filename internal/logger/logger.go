// Package logger configures the application's logging and observability.
//
// It uses zerolog for structured logging and optionally integrates with
// New Relic, forwarding application logs and correlating log lines with
// distributed traces.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/deppfellow/portal-platform/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService owns the optional New Relic application instance.
//
// When New Relic is not configured (empty license key) the service still
// exists but GetApplication returns nil, and all instrumentation call sites
// degrade to no-ops.
type LoggerService struct {
	app *newrelic.Application
}

// New builds the application logger and the observability service.
//
// Behavior:
//   - log level and format come from the observability config
//   - "console" format writes human-friendly output to stderr
//   - when New Relic is configured, logs are routed through zerologWriter so
//     they are forwarded with trace linking metadata
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	service := &LoggerService{}

	nr := cfg.Observability.NewRelic
	if nr.LicenseKey != "" {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(nr.LicenseKey),
			newrelic.ConfigAppLogForwardingEnabled(nr.AppLogForwardingEnabled),
			newrelic.ConfigDistributedTracerEnabled(nr.DistributedTracingEnabled),
			func(c *newrelic.Config) {
				c.Labels = map[string]string{"env": cfg.Observability.Environment}
			},
		)
		if err != nil {
			return nil, nil, err
		}
		service.app = app
	}

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	} else if service.app != nil {
		w := zerologWriter.New(os.Stdout, service.app)
		out = &w
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &logger, service, nil
}

// GetApplication returns the New Relic application, or nil when disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.app
}

// Shutdown flushes agent data. Safe to call when New Relic is disabled.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s != nil && s.app != nil {
		s.app.Shutdown(timeout)
	}
}

// WithTraceContext returns a child logger carrying the transaction's
// trace.id and span.id so log lines can be joined with distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}
