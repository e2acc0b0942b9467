package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	BatchListRequests   atomic.Int64
	BatchDetailRequests atomic.Int64
	PageRequests        atomic.Int64
	PageErrors          atomic.Int64
	ItemsSkipped        atomic.Int64
	RecordsEmitted      atomic.Int64
	SubtitleRequests    atomic.Int64
	SubtitleErrors      atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"batch_list_requests":   metrics.BatchListRequests.Load(),
		"batch_detail_requests": metrics.BatchDetailRequests.Load(),
		"page_requests":         metrics.PageRequests.Load(),
		"page_errors":           metrics.PageErrors.Load(),
		"items_skipped":         metrics.ItemsSkipped.Load(),
		"records_emitted":       metrics.RecordsEmitted.Load(),
		"subtitle_requests":     metrics.SubtitleRequests.Load(),
		"subtitle_errors":       metrics.SubtitleErrors.Load(),
		"cache_hits":            hits,
		"cache_misses":          misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"batch_list_requests", "batch_detail_requests",
		"page_requests", "page_errors",
		"items_skipped", "records_emitted",
		"subtitle_requests", "subtitle_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
