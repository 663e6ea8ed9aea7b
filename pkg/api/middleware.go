package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"triagedesk/pkg/logger"
)

var (
	requestCtr    uint64
	slowThreshold = 200 * time.Millisecond
)

// SetSlowThreshold sets the duration above which requests get a slow-request
// log line. Zero or negative logs everything.
func SetSlowThreshold(d time.Duration) {
	slowThreshold = d
}

// RequestLogger logs slow requests only. Submissions routinely block for the
// whole processing rendezvous, so the threshold keeps normal traffic quiet
// while surfacing outliers on the cheap paths.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := genRequestID()

		srw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(srw, r)

		dur := time.Since(start)
		if dur > slowThreshold {
			logger.Info("slow_request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", srw.status,
				"duration_ms", dur.Milliseconds(),
			)
		}
	})
}

func genRequestID() string {
	n := atomic.AddUint64(&requestCtr, 1)
	return "r-" + time.Now().Format("20060102T150405") + "-" + uitoa(n)
}

func uitoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	buf := make([]byte, 0, 20)
	for v > 0 {
		buf = append(buf, byte('0')+byte(v%10))
		v /= 10
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// statusRecorder captures the response status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
