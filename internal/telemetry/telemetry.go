// Package telemetry installs the OpenTelemetry tracer provider and the Sentry client.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/config"
)

const sentryFlushTimeout = 2 * time.Second

// Telemetry owns whatever was installed by Setup.
type Telemetry struct {
	provider *sdktrace.TracerProvider
	sentry   bool
}

// TracingEnabled reports whether spans are exported.
func (t *Telemetry) TracingEnabled() bool { return t.provider != nil }

// SentryEnabled reports whether the Sentry client was initialized.
func (t *Telemetry) SentryEnabled() bool { return t.sentry }

// Setup installs an OTLP/HTTP tracer provider when an endpoint is configured and
// initializes Sentry when a DSN is set. Both are optional.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Telemetry, error) {
	t := &Telemetry{}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
		if err != nil {
			return nil, fmt.Errorf("otlptracehttp.New > %w", err)
		}
		res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.ServiceName))
		t.provider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		)
		otel.SetTracerProvider(t.provider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		logger.Info("tracing enabled", zap.String("endpoint", cfg.OTLPEndpoint))
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			ServerName:       cfg.ServiceName,
			AttachStacktrace: true,
		}); err != nil {
			return nil, errors.Join(fmt.Errorf("sentry.Init > %w", err), t.Shutdown(ctx))
		}
		t.sentry = true
		logger.Info("sentry enabled")
	}
	return t, nil
}

// Shutdown flushes pending spans and events.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.sentry {
		sentry.Flush(sentryFlushTimeout)
	}
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
