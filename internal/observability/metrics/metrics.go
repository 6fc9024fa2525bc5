// Package metrics exposes the engine's OTel instruments.
package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics holds the engine's instruments.
type Metrics struct {
	occurrences          metric.Int64Counter
	unmappedLabels       metric.Int64Counter
	inconsistentCounters metric.Int64Counter
	providerFailures     metric.Int64Counter
	reportRequests       metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New builds the domain instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "amalan"
	}
	meter := provider.Meter(name)

	occurrences, err := meter.Int64Counter("amalan_occurrences_normalized_total")
	if err != nil {
		return nil, err
	}
	unmappedLabels, err := meter.Int64Counter("amalan_unmapped_labels_total")
	if err != nil {
		return nil, err
	}
	inconsistentCounters, err := meter.Int64Counter("amalan_inconsistent_counters_total")
	if err != nil {
		return nil, err
	}
	providerFailures, err := meter.Int64Counter("amalan_provider_failures_total")
	if err != nil {
		return nil, err
	}
	reportRequests, err := meter.Int64Counter("amalan_report_requests_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		occurrences:          occurrences,
		unmappedLabels:       unmappedLabels,
		inconsistentCounters: inconsistentCounters,
		providerFailures:     providerFailures,
		reportRequests:       reportRequests,
	}, nil
}

// RecordOccurrences counts tuples produced by one normalizer pass.
func (m *Metrics) RecordOccurrences(ctx context.Context, sourceKind string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.occurrences.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("source_kind", sourceKind),
	))
}

// RecordUnmappedLabels counts dropped records with no catalog mapping.
func (m *Metrics) RecordUnmappedLabels(ctx context.Context, sourceKind string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.unmappedLabels.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("source_kind", sourceKind),
	))
}

// RecordInconsistentCounters counts cached-vs-recomputed mismatches.
func (m *Metrics) RecordInconsistentCounters(ctx context.Context, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.inconsistentCounters.Add(ctx, int64(count))
}

// RecordProviderFailure counts a failed source fetch.
func (m *Metrics) RecordProviderFailure(ctx context.Context, sourceKind string) {
	if m == nil {
		return
	}
	m.providerFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source_kind", sourceKind),
	))
}

// RecordReportRequest counts one report computation by kind.
func (m *Metrics) RecordReportRequest(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.reportRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("report", kind),
	))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "http", "http/protobuf":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp protocol %q", protocol)
	}
}
