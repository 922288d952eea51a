package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitConsole configures a stdout span exporter and registers the global
// tracer. It returns a shutdown function to flush spans on exit.
func InitConsole(serviceName string, pretty bool) (func(context.Context) error, error) {
	opts := []stdouttrace.Option{}
	if pretty {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}

	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)
	SetTracer(provider.Tracer(serviceName))

	return provider.Shutdown, nil
}
