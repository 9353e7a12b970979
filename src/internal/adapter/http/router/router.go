package router

import (
	"net/http"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// New mounts the docs, /metrics and every controller, and wraps the mux in
// request id, metrics and tracing middleware, outermost first.
func New(authMiddleware func(http.Handler) http.Handler, controllers ...RouteRegistrar) http.Handler {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	for _, controller := range controllers {
		if controller != nil {
			controller.RegisterRoutes(mux, authMiddleware)
		}
	}

	return middleware.RequestID(middleware.Metrics(middleware.Tracing(mux)))
}
