package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome and skip reason label values.
const (
	OutcomeInserted = "inserted"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"

	SkipDecode      = "decode"
	SkipMap         = "map"
	SkipUnsupported = "unsupported"
	SkipDuplicate   = "duplicate"
)

var (
	// Database metrics
	dbQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainscanner_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"db", "operation"},
	)

	dbQueryTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainscanner_db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"db", "operation"},
	)

	dbErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainscanner_db_errors_total",
			Help: "Total number of database errors",
		},
		[]string{"db", "error_type"},
	)

	// Scanning metrics
	LastScannedBlock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainscanner_last_scanned_block",
			Help: "The last block of the last completed window",
		},
		[]string{"scanner"},
	)

	ScanCeiling = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainscanner_scan_ceiling_block",
			Help: "The last block of the current run",
		},
		[]string{"scanner"},
	)

	BlocksScanned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainscanner_blocks_scanned_total",
			Help: "Total number of blocks covered by completed windows",
		},
		[]string{"scanner"},
	)

	LogsScanned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainscanner_logs_scanned_total",
			Help: "Total number of logs returned by log queries",
		},
		[]string{"scanner"},
	)

	RecordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainscanner_records_written_total",
			Help: "Records handed to the store by outcome",
		},
		[]string{"scanner", "outcome"},
	)

	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainscanner_records_skipped_total",
			Help: "Records dropped before reaching the store by reason",
		},
		[]string{"scanner", "reason"},
	)

	WindowDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainscanner_window_duration_seconds",
			Help:    "Time taken to process one block window",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scanner"},
	)

	ScanRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainscanner_scan_rate_blocks_per_second",
			Help: "Current scanning rate in blocks per second",
		},
		[]string{"scanner"},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainscanner_uptime_seconds",
			Help: "Time since the scanner started",
		},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainscanner_component_health",
			Help: "Health status of components (1 = healthy, 0 = unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainscanner_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainscanner_memory_usage_bytes",
			Help: "Memory usage in bytes",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func DBQueryInc(db string, operation string) {
	dbQueries.WithLabelValues(db, operation).Inc()
}

func DBQueryDuration(db string, operation string, duration time.Duration) {
	dbQueryTime.WithLabelValues(db, operation).Observe(duration.Seconds())
}

func DBErrorsInc(db string, errorType string) {
	dbErrors.WithLabelValues(db, errorType).Inc()
}

func WindowDurationLog(scanner string, duration time.Duration) {
	WindowDuration.WithLabelValues(scanner).Observe(duration.Seconds())
}

func LastScannedBlockSet(scanner string, blockNum uint64) {
	LastScannedBlock.WithLabelValues(scanner).Set(float64(blockNum))
}

func ScanCeilingSet(scanner string, blockNum uint64) {
	ScanCeiling.WithLabelValues(scanner).Set(float64(blockNum))
}

func BlocksScannedInc(scanner string, count uint64) {
	BlocksScanned.WithLabelValues(scanner).Add(float64(count))
}

func LogsScannedInc(scanner string, count int) {
	LogsScanned.WithLabelValues(scanner).Add(float64(count))
}

func RecordsWrittenInc(scanner, outcome string, count int) {
	if count > 0 {
		RecordsWritten.WithLabelValues(scanner, outcome).Add(float64(count))
	}
}

func RecordsSkippedInc(scanner, reason string, count int) {
	if count > 0 {
		RecordsSkipped.WithLabelValues(scanner, reason).Add(float64(count))
	}
}

func ScanRateLog(scanner string, rate float64) {
	ScanRate.WithLabelValues(scanner).Set(rate)
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
