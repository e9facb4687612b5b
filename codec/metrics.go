package codec

import "github.com/VictoriaMetrics/metrics"

// Handler cache counters. Compilation happens once per type per registry, so
// these stay cheap; they surface how much of the workload leans on the
// structural fallback versus dedicated layouts.
var (
	metricCompiles    = metrics.NewCounter("wirebuf_codec_handlers_compiled_total")
	metricStructural  = metrics.NewCounter("wirebuf_codec_handlers_structural_total")
	metricUnsupported = metrics.NewCounter("wirebuf_codec_types_rejected_total")
)
