package reckon

// A MetricsSink receives observability samples from analyzer executions.
// Samples are fire-and-forget: implementations must not block, and no
// analyzer depends on a sink for correctness.
type MetricsSink interface {
	// Distribution records one sample of a distribution-valued metric
	Distribution(name string, sample int64)
}

// NullMetrics is a MetricsSink which discards all samples
type NullMetrics struct{}

// Distribution records one sample of a distribution-valued metric
func (NullMetrics) Distribution(name string, sample int64) {}
