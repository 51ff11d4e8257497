// Package health aggregates component checks into the /health, readiness
// and liveness responses of the API server.
package health

import (
	"context"
	"maps"
	"time"
)

const defaultCheckTimeout = 5 * time.Second

func NewHealthChecker(opts ...Option) *HealthChecker {
	hc := &HealthChecker{
		timeout: defaultCheckTimeout,
		now:     time.Now,
	}
	for i := range hc.checks {
		hc.checks[i] = make(map[string]CheckFunc)
	}
	for _, opt := range opts {
		opt(hc)
	}
	hc.started = hc.now()
	return hc
}

// RegisterCheck adds a check to /health. Registering a name twice replaces
// the earlier check.
func (hc *HealthChecker) RegisterCheck(name string, check CheckFunc) {
	hc.register(kindGeneral, name, check)
}

// RegisterReadinessCheck adds a check that gates /health/ready.
func (hc *HealthChecker) RegisterReadinessCheck(name string, check CheckFunc) {
	hc.register(kindReadiness, name, check)
}

// RegisterLivenessCheck adds a check that gates /health/live.
func (hc *HealthChecker) RegisterLivenessCheck(name string, check CheckFunc) {
	hc.register(kindLiveness, name, check)
}

func (hc *HealthChecker) register(kind checkKind, name string, check CheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[kind][name] = check
}

func (hc *HealthChecker) Check(ctx context.Context) Response {
	return hc.run(ctx, kindGeneral)
}

func (hc *HealthChecker) CheckReadiness(ctx context.Context) Response {
	return hc.run(ctx, kindReadiness)
}

func (hc *HealthChecker) CheckLiveness(ctx context.Context) Response {
	return hc.run(ctx, kindLiveness)
}

type namedCheck struct {
	name  string
	check Check
}

// run executes the checks of one kind concurrently. Checks still running
// when the timeout or ctx expires are reported unhealthy; their goroutines
// finish into a buffered channel nobody reads.
func (hc *HealthChecker) run(ctx context.Context, kind checkKind) Response {
	hc.mu.RLock()
	checks := maps.Clone(hc.checks[kind])
	hc.mu.RUnlock()

	now := hc.now()
	resp := Response{
		Status:    StatusHealthy,
		Timestamp: now,
		Checks:    make(map[string]Check, len(checks)),
		Uptime:    now.Sub(hc.started),
	}

	if hc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hc.timeout)
		defer cancel()
	}

	results := make(chan namedCheck, len(checks))
	pending := make(map[string]bool, len(checks))
	for name, fn := range checks {
		pending[name] = true
		go func() {
			results <- namedCheck{name, hc.runOne(ctx, name, fn)}
		}()
	}

	for len(pending) > 0 {
		select {
		case r := <-results:
			delete(pending, r.name)
			resp.add(r.name, r.check)
		case <-ctx.Done():
			for name := range pending {
				resp.add(name, Check{
					Name:        name,
					Status:      StatusUnhealthy,
					Message:     "check did not finish: " + ctx.Err().Error(),
					LastChecked: now,
					Duration:    hc.now().Sub(now),
				})
			}
			clear(pending)
		}
	}

	return resp
}

func (hc *HealthChecker) runOne(ctx context.Context, name string, fn CheckFunc) Check {
	start := hc.now()
	check := fn(ctx)
	check.Duration = hc.now().Sub(start)
	check.LastChecked = start
	if check.Name == "" {
		check.Name = name
	}
	if check.Status == "" {
		check.Status = StatusUnhealthy
	}
	return check
}

func (r *Response) add(name string, check Check) {
	r.Checks[name] = check
	if check.Status.severity() > r.Status.severity() {
		r.Status = check.Status
	}
}
