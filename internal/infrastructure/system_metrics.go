package infrastructure

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// SystemMetrics records Go runtime gauges for the service process.
type SystemMetrics struct {
	goRoutines    metric.Int64Gauge
	heapAlloc     metric.Int64Gauge
	gcCount       metric.Int64Gauge
	processUptime metric.Float64Gauge
}

// NewSystemMetrics creates the runtime gauges on meter
func NewSystemMetrics(meter metric.Meter) (*SystemMetrics, error) {
	goRoutines, err := meter.Int64Gauge(
		"system_goroutines",
		metric.WithDescription("Number of active goroutines"),
	)
	if err != nil {
		return nil, err
	}

	heapAlloc, err := meter.Int64Gauge(
		"system_memory_usage_bytes",
		metric.WithDescription("Heap bytes allocated and in use"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCount, err := meter.Int64Gauge(
		"system_gc_count",
		metric.WithDescription("Number of completed GC cycles"),
	)
	if err != nil {
		return nil, err
	}

	processUptime, err := meter.Float64Gauge(
		"system_uptime_seconds",
		metric.WithDescription("Process uptime in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &SystemMetrics{
		goRoutines:    goRoutines,
		heapAlloc:     heapAlloc,
		gcCount:       gcCount,
		processUptime: processUptime,
	}, nil
}

// SystemStats is a snapshot of the Go runtime
type SystemStats struct {
	GoRoutines    int64         `json:"goroutines"`
	HeapAlloc     int64         `json:"heap_alloc_bytes"`
	GCCount       uint32        `json:"gc_count"`
	CPUCount      int           `json:"cpu_count"`
	GoVersion     string        `json:"go_version"`
	ProcessUptime time.Duration `json:"uptime_ns"`
	Timestamp     time.Time     `json:"timestamp"`
}

// ReadSystemStats takes a runtime snapshot without recording it
func ReadSystemStats(startTime time.Time) *SystemStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &SystemStats{
		GoRoutines:    int64(runtime.NumGoroutine()),
		HeapAlloc:     int64(memStats.HeapAlloc),
		GCCount:       memStats.NumGC,
		CPUCount:      runtime.NumCPU(),
		GoVersion:     runtime.Version(),
		ProcessUptime: time.Since(startTime),
		Timestamp:     time.Now(),
	}
}

// Collect takes a snapshot and records it on the gauges
func (sm *SystemMetrics) Collect(ctx context.Context, startTime time.Time) *SystemStats {
	stats := ReadSystemStats(startTime)

	sm.goRoutines.Record(ctx, stats.GoRoutines)
	sm.heapAlloc.Record(ctx, stats.HeapAlloc)
	sm.gcCount.Record(ctx, int64(stats.GCCount))
	sm.processUptime.Record(ctx, stats.ProcessUptime.Seconds())

	return stats
}

// SystemMetricsCollector records runtime gauges on an interval
type SystemMetricsCollector struct {
	metrics   *SystemMetrics
	startTime time.Time
	interval  time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewSystemMetricsCollector creates a collector; Start runs it
func NewSystemMetricsCollector(meter metric.Meter, interval time.Duration) (*SystemMetricsCollector, error) {
	metrics, err := NewSystemMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create system metrics: %w", err)
	}

	return &SystemMetricsCollector{
		metrics:   metrics,
		startTime: time.Now(),
		interval:  interval,
		stopCh:    make(chan struct{}),
	}, nil
}

// Start collects until ctx is done or Stop is called. It blocks.
func (smc *SystemMetricsCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(smc.interval)
	defer ticker.Stop()

	smc.metrics.Collect(ctx, smc.startTime)

	for {
		select {
		case <-ticker.C:
			smc.metrics.Collect(ctx, smc.startTime)
		case <-smc.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops the metrics collection; it is safe to call more than once
func (smc *SystemMetricsCollector) Stop() {
	smc.stopOnce.Do(func() { close(smc.stopCh) })
}
