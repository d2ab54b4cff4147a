package drlogger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/dobrawek/drlogger"

const (
	metricRotations        = "drlogger.rotations"
	metricRotationFailures = "drlogger.rotation.failures"
	metricDeletions        = "drlogger.deletions"
	metricDeleteFailures   = "drlogger.deletion.failures"
	metricWrites           = "drlogger.writes"
	metricWriteFailures    = "drlogger.write.failures"
)

// StatsSource is implemented by listeners that keep Stats
type StatsSource interface {
	Name() string
	Stats() *Stats
}

// RegisterMetrics exports the counters of each source as observable counters.
// A nil provider uses the global MeterProvider. Unregister the returned
// registration to stop reporting.
func RegisterMetrics(provider metric.MeterProvider, sources ...StatsSource) (metric.Registration, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(instrumentationName)

	type instrument struct {
		counter metric.Int64ObservableCounter
		read    func(StatsSnapshot) uint64
	}

	defs := []struct {
		name string
		desc string
		read func(StatsSnapshot) uint64
	}{
		{metricRotations, "Log file rotations", func(s StatsSnapshot) uint64 { return s.Rotations }},
		{metricRotationFailures, "Log file rotations that failed", func(s StatsSnapshot) uint64 { return s.RotationFailures }},
		{metricDeletions, "Log files removed by retention", func(s StatsSnapshot) uint64 { return s.Deletions }},
		{metricDeleteFailures, "Log files retention failed to remove", func(s StatsSnapshot) uint64 { return s.DeleteFailures }},
		{metricWrites, "Log lines appended", func(s StatsSnapshot) uint64 { return s.Writes }},
		{metricWriteFailures, "Log lines dropped", func(s StatsSnapshot) uint64 { return s.WriteFailures }},
	}

	instruments := make([]instrument, 0, len(defs))
	observables := make([]metric.Observable, 0, len(defs))
	for _, def := range defs {
		counter, err := meter.Int64ObservableCounter(def.name, metric.WithDescription(def.desc), metric.WithUnit("{count}"))
		if err != nil {
			return nil, fmtErrorf("create counter %s: %w", def.name, err)
		}
		instruments = append(instruments, instrument{counter: counter, read: def.read})
		observables = append(observables, counter)
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for _, src := range sources {
			snap := src.Stats().Snapshot()
			attrs := metric.WithAttributes(attribute.String("listener", src.Name()))
			for _, inst := range instruments {
				o.ObserveInt64(inst.counter, int64(inst.read(snap)), attrs)
			}
		}
		return nil
	}, observables...)
	if err != nil {
		return nil, fmtErrorf("register metrics callback: %w", err)
	}
	return reg, nil
}
