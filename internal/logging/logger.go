package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

var (
	log         *logrus.Logger
	serviceName string
)

func init() {
	log = logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(newFormatter())
	log.SetLevel(logrus.InfoLevel)
}

func newFormatter() logrus.Formatter {
	return &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
	}
}

// Init configures the process-wide logger. When logDir is set, entries are
// written to both stdout and logDir/app.log; if the file cannot be opened the
// logger falls back to stdout only.
func Init(service, level, logDir string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	serviceName = service
	log.SetLevel(lvl)
	log.SetOutput(os.Stdout)

	if logDir == "" {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.WithError(err).Warn("cannot create log directory, logging to stdout only")
		return nil
	}
	file, err := os.OpenFile(filepath.Join(logDir, "app.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.WithError(err).Warn("cannot open log file, logging to stdout only")
		return nil
	}
	log.SetOutput(io.MultiWriter(os.Stdout, file))
	return nil
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func Logger() *logrus.Logger {
	return log
}

// WithContext returns a logger with trace context fields (trace_id, span_id) if available
func WithContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if serviceName != "" {
		fields["service.name"] = serviceName
	}

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		fields["trace_id"] = spanCtx.TraceID().String()
		fields["span_id"] = spanCtx.SpanID().String()
		fields["trace_flags"] = spanCtx.TraceFlags().String()
	}

	return log.WithContext(ctx).WithFields(fields)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	WithContext(ctx).Infof(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	WithContext(ctx).Errorf(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	WithContext(ctx).Warnf(format, args...)
}

// WithFields returns a logger entry with additional custom fields
func WithFields(ctx context.Context, fields map[string]interface{}) *logrus.Entry {
	return WithContext(ctx).WithFields(fields)
}
