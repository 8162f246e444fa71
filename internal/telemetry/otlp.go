// Package telemetry builds the OpenTelemetry tracer provider used for API
// request spans. Export over OTLP/HTTP is enabled only when an endpoint is
// configured; otherwise spans are created but dropped.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// DefaultServiceName is used when no service name is configured.
const DefaultServiceName = "productdesk"

// Provider wraps the SDK tracer provider.
type Provider struct {
	provider *sdktrace.TracerProvider
	exporter sdktrace.SpanExporter
}

// Options configures NewProvider.
type Options struct {
	Endpoint    string // host:port of an OTLP/HTTP collector; "" disables export
	ServiceName string
	Insecure    bool
	// Exporter overrides the OTLP exporter (tests).
	Exporter sdktrace.SpanExporter
}

// NewProvider creates a tracer provider and installs it as the global one.
func NewProvider(ctx context.Context, opts Options) (*Provider, error) {
	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	exporter := opts.Exporter
	if exporter == nil && opts.Endpoint != "" {
		clientOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(opts.Endpoint)}
		if opts.Insecure {
			clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
		}
		exp, err := otlptracehttp.New(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("create OTLP exporter for %s: %w", opts.Endpoint, err)
		}
		exporter = exp
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if exporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	}
	provider := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(provider)

	return &Provider{provider: provider, exporter: exporter}, nil
}

// TracerProvider returns the provider for injection into clients.
func (p *Provider) TracerProvider() oteltrace.TracerProvider {
	return p.provider
}

// Exporting reports whether spans leave the process.
func (p *Provider) Exporting() bool {
	return p != nil && p.exporter != nil
}

// ForceFlush exports all ended spans that have not been exported yet.
func (p *Provider) ForceFlush(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.ForceFlush(ctx)
}

// Shutdown flushes pending spans and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
