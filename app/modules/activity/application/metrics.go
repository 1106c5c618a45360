package activityservice

// Metrics records write-behind buffer activity.
type Metrics interface {
	QueueDepth(n int)
	FlushSucceeded(batchSize int)
	FlushFailed(batchSize int)
}

type noopMetrics struct{}

func (noopMetrics) QueueDepth(int)     {}
func (noopMetrics) FlushSucceeded(int) {}
func (noopMetrics) FlushFailed(int)    {}

// NewNoopMetrics returns a Metrics implementation that discards everything.
func NewNoopMetrics() Metrics {
	return noopMetrics{}
}
