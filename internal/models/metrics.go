package models

import "time"

// SystemMetrics is the aggregated operational snapshot served to
// operators alongside the Prometheus endpoint.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"avg_request_duration_ms"`
	SheetOpCount             uint64    `json:"sheet_op_count"`
	AverageSheetOpDurationMs float64   `json:"avg_sheet_op_duration_ms"`
	SnapshotRefreshedAt      time.Time `json:"snapshot_refreshed_at"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
