package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide counters exposed on /metrics.
var (
	UpstreamRequests Counter
	UpstreamErrors   Counter
	StaleResponses   Counter
	DetailNotFound   Counter
	LeadsSubmitted   Counter
	LeadsRejected    Counter
	LeadsFailed      Counter
	SessionsCreated  Counter
	SessionsExpired  Counter
)

// Snapshot returns the current counter values keyed by metric name.
func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"upstream_requests_total": UpstreamRequests.Load(),
		"upstream_errors_total":   UpstreamErrors.Load(),
		"stale_responses_total":   StaleResponses.Load(),
		"detail_not_found_total":  DetailNotFound.Load(),
		"leads_submitted_total":   LeadsSubmitted.Load(),
		"leads_rejected_total":    LeadsRejected.Load(),
		"leads_failed_total":      LeadsFailed.Load(),
		"sessions_created_total":  SessionsCreated.Load(),
		"sessions_expired_total":  SessionsExpired.Load(),
	}
}
