// Package middleware provides the HTTP middleware of the ppinet API server.
//
// Every middleware has the shape func(http.Handler) http.Handler and the
// server chains them outermost first:
//
//	handler := middleware.PanicRecovery(logger)(mux)
//	handler = middleware.Metrics(registry, routes)(handler)
//	handler = middleware.Logging(logger)(handler)
//	handler = middleware.RequestID()(handler)
//	handler = middleware.CORS(cors)(handler)
//	handler = middleware.BodySizeLimit(1 << 20)(handler)
package middleware
