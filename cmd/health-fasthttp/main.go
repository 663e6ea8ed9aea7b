// fasthttp variant of the health probe sidecar. Same contract as the
// net/http probe, kept lean for very high probe rates.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

func main() {
	addr := flag.String("addr", ":8081", "listen address for the probe")
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
				var h struct {
					Status    string `json:"status"`
					QueueSize int    `json:"queue_size"`
				}
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

	h := func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/health":
			ctx.Response.Header.Set("Content-Type", "application/json")
			if !healthy.Load() {
				ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
			}
			_, _ = ctx.Write(cached.Load().([]byte))
		case "/healthz":
			ctx.Response.Header.Set("Content-Type", "application/json")
			ctx.SetStatusCode(fasthttp.StatusOK)
			_, _ = ctx.WriteString(`{"status":"ok"}`)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	}

	fmt.Printf("health probe listening on %s, watching %s\n", *addr, *target)
	srv := &fasthttp.Server{
		Handler:            h,
		Name:               "triagedesk-health-probe",
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       5 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}
	if err := srv.ListenAndServe(*addr); err != nil {
		fmt.Printf("probe server exit: %v\n", err)
	}
}
