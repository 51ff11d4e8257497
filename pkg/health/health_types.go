package health

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Status is the outcome of a check. Ordering matters: an aggregate takes
// the worst status of its checks.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) severity() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// Check is the result of probing one component.
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"-"`
}

func (c Check) MarshalJSON() ([]byte, error) {
	type plain Check
	return json.Marshal(struct {
		plain
		DurationMS float64 `json:"duration_ms"`
	}{plain(c), milliseconds(c.Duration)})
}

// CheckFunc probes a component. It must honour ctx: the checker gives up
// on it once ctx is done.
type CheckFunc func(ctx context.Context) Check

type checkKind int

const (
	kindGeneral checkKind = iota
	kindReadiness
	kindLiveness
	kindCount
)

// HealthChecker runs registered checks on demand and aggregates their
// status.
type HealthChecker struct {
	mu      sync.RWMutex
	checks  [kindCount]map[string]CheckFunc
	started time.Time
	timeout time.Duration
	now     func() time.Time
}

// Option configures a HealthChecker.
type Option func(*HealthChecker)

// WithCheckTimeout bounds every check run. Zero or negative disables the
// bound.
func WithCheckTimeout(d time.Duration) Option {
	return func(hc *HealthChecker) { hc.timeout = d }
}

// Response aggregates the checks of one endpoint.
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Uptime    time.Duration    `json:"-"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	type plain Response
	return json.Marshal(struct {
		plain
		UptimeSeconds float64 `json:"uptime_seconds"`
	}{plain(r), r.Uptime.Seconds()})
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
