// Sidecar probe for load balancers: polls the triage service /health
// endpoint on an interval and serves the cached verdict, so probe traffic
// never competes with query submissions for the intake worker.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

type upstreamHealth struct {
	Status    string `json:"status"`
	QueueSize int    `json:"queue_size"`
}

func main() {
	addr := flag.String("addr", ":8082", "listen address for the probe")
	target := flag.String("target", "http://localhost:8080/health", "triage service health URL")
	interval := flag.Duration("interval", 5*time.Second, "poll interval")
	flag.Parse()

	var cached atomic.Value
	cached.Store([]byte(`{"status":"unknown","queue_size":0}`))
	var healthy atomic.Bool

	client := &http.Client{Timeout: 3 * time.Second}
	go func() {
		for {
			resp, err := client.Get(*target)
			if err != nil {
				healthy.Store(false)
			} else {
				var h upstreamHealth
				err = json.NewDecoder(resp.Body).Decode(&h)
				resp.Body.Close()
				if err == nil && resp.StatusCode == http.StatusOK {
					b, _ := json.Marshal(h)
					cached.Store(b)
					healthy.Store(h.Status == "running")
				} else {
					healthy.Store(false)
				}
			}
			time.Sleep(*interval)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_, _ = w.Write(cached.Load().([]byte))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	fmt.Printf("health probe listening on %s, watching %s\n", *addr, *target)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Printf("probe server exit: %v\n", err)
	}
}
