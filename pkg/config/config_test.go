package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParsesYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  address: 127.0.0.1
  port: 9090
intake:
  queue_capacity: 128
  wait_ceiling_seconds: 300
llm:
  model: llama3-8b-8192
  rps: 2
publisher:
  webhook_url: http://localhost:3000/tickets
  kafka:
    brokers: ["k1:9092", "k2:9092"]
    topic: tickets
reporter:
  enabled: true
  cron: "*/5 * * * *"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Fatalf("addr = %s", cfg.Addr())
	}
	if cfg.Intake.QueueCapacity != 128 || cfg.Intake.WaitCeilingSeconds != 300 {
		t.Fatalf("intake = %+v", cfg.Intake)
	}
	if len(cfg.Publisher.Kafka.Brokers) != 2 || cfg.Publisher.Kafka.Topic != "tickets" {
		t.Fatalf("kafka = %+v", cfg.Publisher.Kafka)
	}
	if !cfg.Reporter.Enabled || cfg.Reporter.Cron != "*/5 * * * *" {
		t.Fatalf("reporter = %+v", cfg.Reporter)
	}
}

func TestAddrDefaults(t *testing.T) {
	var cfg Config
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("addr = %s", cfg.Addr())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRIAGEDESK_ADDR", "127.0.0.1:7070")
	t.Setenv("TRIAGEDESK_QUEUE_CAPACITY", "99")
	t.Setenv("TRIAGEDESK_KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("DEMO_SERVER_URL", "http://demo:3000")

	var cfg Config
	if !LoadEnvOverrides(&cfg) {
		t.Fatalf("env not detected")
	}
	if cfg.Addr() != "127.0.0.1:7070" {
		t.Fatalf("addr = %s", cfg.Addr())
	}
	if cfg.Intake.QueueCapacity != 99 {
		t.Fatalf("queue capacity = %d", cfg.Intake.QueueCapacity)
	}
	if len(cfg.Publisher.Kafka.Brokers) != 2 || cfg.Publisher.Kafka.Brokers[1] != "b:9092" {
		t.Fatalf("brokers = %v", cfg.Publisher.Kafka.Brokers)
	}
	if cfg.Publisher.WebhookURL != "http://demo:3000" {
		t.Fatalf("webhook = %s", cfg.Publisher.WebhookURL)
	}
}

func TestLoadEffectiveFlagWins(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9999\n")
	eff, err := LoadEffective(path, ":6060", map[string]bool{"addr": true})
	if err != nil {
		t.Fatalf("load effective: %v", err)
	}
	if eff.Addr != ":6060" || eff.Source != "flags" {
		t.Fatalf("eff = %+v", eff)
	}
}

func TestLoadEffectiveMissingFileTolerated(t *testing.T) {
	eff, err := LoadEffective(filepath.Join(t.TempDir(), "absent.yaml"), ":8080", map[string]bool{})
	if err != nil {
		t.Fatalf("missing config should not be fatal: %v", err)
	}
	if eff.Config == nil {
		t.Fatalf("nil config")
	}
}
