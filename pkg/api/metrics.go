package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpResponse = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "customerapi_http_response",
	Help:    "Histogram of HTTP response times in seconds",
	Buckets: []float64{.001, .003, .005, .01, .025, .05, .1, .2, .3, .4, .5, .75, 1, 2, 3, 5, 10, 30},
}, []string{"path", "method", "status"})

// metricsMiddleware observes every request under its route template, so
// /customers/{guid} stays a single series regardless of the guid.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(srw, r)

		httpResponse.WithLabelValues(path, r.Method, strconv.Itoa(srw.status)).Observe(time.Since(start).Seconds())
	})
}
