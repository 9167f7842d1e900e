package engine

import "sync/atomic"

// Metrics counts generative-backend failures across engine instances.
// Failures are absorbed into the apology reply and would otherwise be
// invisible to operators.
type Metrics struct {
	backendFailures atomic.Uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordBackendFailure() {
	if m != nil {
		m.backendFailures.Add(1)
	}
}

// BackendFailures returns the number of generative calls that ended in the
// apology path since process start.
func (m *Metrics) BackendFailures() uint64 {
	if m == nil {
		return 0
	}
	return m.backendFailures.Load()
}
