package httphandler

import (
	"log/slog"
	"net/http"
	"time"
)

// AllowRead rejects every method except GET and HEAD.
func AllowRead(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type RequestObserver interface {
	ObserveRequest(route string, code int)
}

// Observe logs every request and reports it to o under the matched route pattern.
func Observe(o RequestObserver, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		const op = "httphandler.Observe"

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		o.ObserveRequest(route, sw.code)

		slog.Debug("request served",
			"op", op,
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"code", sw.code,
			"dur", time.Since(start),
		)
	}
	return http.HandlerFunc(hf)
}

type statusWriter struct {
	http.ResponseWriter
	code        int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.code = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
