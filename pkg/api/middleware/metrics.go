package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// MetricsRecorder is the slice of the metrics registry the HTTP layer
// needs.
type MetricsRecorder interface {
	RecordHTTPRequest(method, path, status string, duration time.Duration)
	RecordResponseSize(method, path string, size float64)
	IncHTTPRequestsInFlight()
	DecHTTPRequestsInFlight()
}

// OtherRoute is the path label for anything outside the route table.
const OtherRoute = "other"

// routeLabel maps a request path onto a bounded label set.
type routeLabel map[string]struct{}

func newRouteLabel(routes []string) routeLabel {
	l := make(routeLabel, len(routes))
	for _, route := range routes {
		l[route] = struct{}{}
	}
	return l
}

func (l routeLabel) of(path string) string {
	if _, ok := l[path]; ok {
		return path
	}
	return OtherRoute
}

// Metrics records count, latency and response size per method, route and
// status, plus the number of requests in flight. A nil recorder turns the
// middleware into a pass-through.
func Metrics(recorder MetricsRecorder, routes []string) func(http.Handler) http.Handler {
	labels := newRouteLabel(routes)

	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder.IncHTTPRequestsInFlight()
			defer recorder.DecHTTPRequestsInFlight()

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			route := labels.of(r.URL.Path)
			recorder.RecordHTTPRequest(r.Method, route, strconv.Itoa(sw.statusCode), elapsed)
			recorder.RecordResponseSize(r.Method, route, float64(sw.bytesWritten))
		})
	}
}
