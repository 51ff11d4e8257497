package health

import (
	"context"
	"encoding/json"
	"net/http"
)

// HTTPHandler serves the aggregate of all general checks. Only unhealthy
// answers 503; a degraded service still takes traffic.
func (hc *HealthChecker) HTTPHandler() http.HandlerFunc {
	return handler(hc.Check, StatusDegraded)
}

// ReadinessHandler answers 503 unless every readiness check is healthy.
func (hc *HealthChecker) ReadinessHandler() http.HandlerFunc {
	return handler(hc.CheckReadiness, StatusHealthy)
}

func (hc *HealthChecker) LivenessHandler() http.HandlerFunc {
	return handler(hc.CheckLiveness, StatusHealthy)
}

// handler answers 200 while the aggregate status is no worse than tolerated
func handler(run func(context.Context) Response, tolerated Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := run(r.Context())
		code := http.StatusOK
		if resp.Status.severity() > tolerated.severity() {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
