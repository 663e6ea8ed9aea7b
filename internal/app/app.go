package app

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"triagedesk/internal/reporter"
	"triagedesk/pkg/classify"
	"triagedesk/pkg/config"
	"triagedesk/pkg/feedback"
	"triagedesk/pkg/intake"
	"triagedesk/pkg/llm"
	"triagedesk/pkg/logger"
	"triagedesk/pkg/process"
	"triagedesk/pkg/publisher"
	"triagedesk/pkg/transcribe"
)

// App encapsulates the server components and lifecycle.
type App struct {
	eff       config.Effective
	version   string
	commit    string
	buildDate string

	dispatcher *intake.Dispatcher
	analyzer   *feedback.Analyzer
	pub        *publisher.Publisher

	srv *http.Server
}

// New wires the processing pipeline: LLM client, classifier, transcriber,
// ticket publisher and the intake dispatcher. It does not start the worker
// or the HTTP server; call Run to start those and block until shutdown.
func New(eff config.Effective, version, commit, buildDate string) (*App, error) {
	_ = godotenv.Load(".env")

	cfg := eff.Config

	llmClient := llm.New(llm.Options{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  eff.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		RPS:     cfg.LLM.RPS,
		Burst:   cfg.LLM.Burst,
	})
	if !llmClient.Enabled() {
		logger.Warn("llm_disabled", "reason", "no api key, keyword fallback in use")
	}

	var transcriber transcribe.Transcriber
	if cfg.Transcription.Endpoint != "" {
		transcriber = transcribe.NewClient(
			cfg.Transcription.Endpoint,
			eff.APIKey,
			time.Duration(cfg.Transcription.TimeoutSeconds)*time.Second,
		)
	}

	proc := process.New(classify.New(llmClient), transcriber)

	var sinks []publisher.Sink
	if cfg.Publisher.WebhookURL != "" {
		sinks = append(sinks, publisher.NewWebhookSink(cfg.Publisher.WebhookURL, 10*time.Second))
	}
	if len(cfg.Publisher.Kafka.Brokers) > 0 && cfg.Publisher.Kafka.Topic != "" {
		sinks = append(sinks, publisher.NewKafkaSink(cfg.Publisher.Kafka.Brokers, cfg.Publisher.Kafka.Topic))
	}
	pub := publisher.New(sinks...)

	opts := intake.Options{
		QueueCapacity: cfg.Intake.QueueCapacity,
		WaitCeiling:   time.Duration(cfg.Intake.WaitCeilingSeconds) * time.Second,
		PollInterval:  time.Duration(cfg.Intake.PollIntervalSeconds) * time.Second,
	}
	if pub.Enabled() {
		opts.OnTicket = pub.Hook()
	}
	d := intake.NewDispatcher(proc, opts)
	intake.RegisterDepthGauge(d)

	a := &App{
		eff:        eff,
		version:    version,
		commit:     commit,
		buildDate:  buildDate,
		dispatcher: d,
		analyzer:   feedback.NewAnalyzer(llmClient),
		pub:        pub,
	}
	return a, nil
}

// Run starts the intake worker, the stats reporter and the HTTP server,
// and blocks until ctx is canceled or a fatal server error occurs.
func (a *App) Run(ctx context.Context) error {
	a.printBanner()

	a.dispatcher.Start()
	logger.Info("intake_worker_started")

	cancelReporter, err := reporter.Start(ctx, a.eff.Config, a.dispatcher)
	if err != nil {
		return err
	}
	defer cancelReporter()

	errCh := a.startHTTP()

	select {
	case <-ctx.Done():
		a.shutdown()
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// shutdown drains in order: stop accepting HTTP, join the worker, close
// publisher sinks. Queued entries that never reach the worker have their
// waiters released by the wait ceiling or the caller's context.
func (a *App) shutdown() {
	logger.Info("shutdown_started")

	if a.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(ctx); err != nil {
			logger.Warn("http_shutdown_error", "error", err)
		}
	}

	join := time.Duration(a.eff.Config.Intake.WorkerJoinSeconds) * time.Second
	if join <= 0 {
		join = 5 * time.Second
	}
	if !a.dispatcher.Stop(join) {
		logger.Warn("worker_join_timeout", "timeout", join)
	}

	a.pub.Close()
	logger.Info("shutdown_complete")
}
