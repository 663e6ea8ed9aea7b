// Package config loads the service configuration from a YAML file with
// environment and flag overrides layered on top: flags win, then env,
// then the file.
package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
	} `yaml:"server"`

	Intake struct {
		QueueCapacity int `yaml:"queue_capacity"`
		// WaitCeilingSeconds bounds the synchronous wait of a submitter.
		WaitCeilingSeconds int `yaml:"wait_ceiling_seconds"`
		// PollIntervalSeconds is the idle worker's shutdown-check cadence.
		PollIntervalSeconds int `yaml:"poll_interval_seconds"`
		WorkerJoinSeconds   int `yaml:"worker_join_seconds"`
	} `yaml:"intake"`

	LLM struct {
		BaseURL        string  `yaml:"base_url"`
		Model          string  `yaml:"model"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RPS            float64 `yaml:"rps"`
		Burst          int     `yaml:"burst"`
	} `yaml:"llm"`

	Transcription struct {
		Endpoint       string `yaml:"endpoint"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"transcription"`

	Publisher struct {
		WebhookURL string `yaml:"webhook_url"`
		Kafka      struct {
			Brokers []string `yaml:"brokers"`
			Topic   string   `yaml:"topic"`
		} `yaml:"kafka"`
	} `yaml:"publisher"`

	Reporter struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"`
	} `yaml:"reporter"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Addr returns host:port for the HTTP server.
func (c *Config) Addr() string {
	addr := c.Server.Address
	if addr == "" {
		addr = "0.0.0.0"
	}
	p := c.Server.Port
	if p == 0 {
		p = 8080
	}
	return fmt.Sprintf("%s:%d", addr, p)
}

// Load reads and parses the YAML config at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Effective is the merged runtime configuration plus provenance.
type Effective struct {
	Config *Config
	Addr   string
	// APIKey is the model API key, sourced from env only.
	APIKey string
	// Source names where the listen address came from: flags|env|config.
	Source string
}

// ParseCommandFlags defines and parses command-line flags, returning
// their values and which were explicitly set.
func ParseCommandFlags() (addr string, cfgPath string, setFlags map[string]bool) {
	addrPtr := flag.String("addr", ":8080", "HTTP listen address")
	cfgPtr := flag.String("config", "./config.yaml", "Path to config file")
	flag.Parse()
	setFlags = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	return *addrPtr, *cfgPtr, setFlags
}

// LoadEnvOverrides applies environment overrides onto cfg and reports
// whether any env var was used.
func LoadEnvOverrides(cfg *Config) bool {
	envUsed := false

	if v := os.Getenv("TRIAGEDESK_ADDR"); v != "" {
		envUsed = true
		if h, p, err := net.SplitHostPort(v); err == nil {
			cfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Server.Port = pi
			}
		}
	}
	if v := os.Getenv("TRIAGEDESK_QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			envUsed = true
			cfg.Intake.QueueCapacity = n
		}
	}
	if v := os.Getenv("TRIAGEDESK_WAIT_CEILING_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			envUsed = true
			cfg.Intake.WaitCeilingSeconds = n
		}
	}
	if v := os.Getenv("TRIAGEDESK_LLM_BASE_URL"); v != "" {
		envUsed = true
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("TRIAGEDESK_TRANSCRIBE_ENDPOINT"); v != "" {
		envUsed = true
		cfg.Transcription.Endpoint = v
	}
	if v := os.Getenv("DEMO_SERVER_URL"); v != "" {
		envUsed = true
		cfg.Publisher.WebhookURL = v
	}
	if v := os.Getenv("TRIAGEDESK_KAFKA_BROKERS"); v != "" {
		envUsed = true
		cfg.Publisher.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("TRIAGEDESK_KAFKA_TOPIC"); v != "" {
		envUsed = true
		cfg.Publisher.Kafka.Topic = v
	}
	if v := os.Getenv("TRIAGEDESK_LOG_LEVEL"); v != "" {
		envUsed = true
		cfg.Logging.Level = v
	}
	return envUsed
}

func splitList(v string) []string {
	var parts []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// LoadEffective merges file, env and flags into the effective config.
// A missing config file is not fatal; defaults plus env then apply.
func LoadEffective(cfgPath, flagAddr string, setFlags map[string]bool) (Effective, error) {
	cfg, err := Load(cfgPath)
	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return Effective{}, err
		}
		cfg = &Config{}
	}

	envUsed := LoadEnvOverrides(cfg)

	eff := Effective{Config: cfg, APIKey: os.Getenv("GROQ_API_KEY")}
	switch {
	case setFlags["addr"]:
		eff.Addr = flagAddr
		eff.Source = "flags"
	case envUsed:
		eff.Addr = cfg.Addr()
		eff.Source = "env"
	default:
		eff.Addr = cfg.Addr()
		eff.Source = "config"
	}
	return eff, nil
}
