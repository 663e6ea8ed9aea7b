package banner

import (
	"fmt"

	"triagedesk/pkg/config"
)

const banner = `
████████╗██████╗ ██╗ █████╗  ██████╗ ███████╗██████╗ ███████╗███████╗██╗  ██╗
╚══██╔══╝██╔══██╗██║██╔══██╗██╔════╝ ██╔════╝██╔══██╗██╔════╝██╔════╝██║ ██╔╝
   ██║   ██████╔╝██║███████║██║  ███╗█████╗  ██║  ██║█████╗  ███████╗█████╔╝
   ██║   ██╔══██╗██║██╔══██║██║   ██║██╔══╝  ██║  ██║██╔══╝  ╚════██║██╔═██╗
   ██║   ██║  ██║██║██║  ██║╚██████╔╝███████╗██████╔╝███████╗███████║██║  ██╗
   ╚═╝   ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝
`

// PrintWithEff prints the startup banner with runtime info pulled from
// the effective config (listen address, queue sizing, enabled integrations).
func PrintWithEff(eff config.Effective, version string) {
	addr := eff.Addr
	if addr == "" && eff.Config != nil {
		addr = eff.Config.Addr()
	}
	src := eff.Source
	if src == "" {
		src = "config"
	}

	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", addr)
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	fmt.Printf("Config:   %s\n", src)
	if eff.Config != nil {
		if eff.Config.Intake.QueueCapacity > 0 {
			fmt.Printf("Queue:    %d\n", eff.Config.Intake.QueueCapacity)
		}
		if eff.APIKey != "" {
			fmt.Println("LLM:      enabled")
		} else {
			fmt.Println("LLM:      disabled (keyword fallback)")
		}
		if eff.Config.Publisher.WebhookURL != "" {
			fmt.Printf("Webhook:  %s\n", eff.Config.Publisher.WebhookURL)
		}
		if len(eff.Config.Publisher.Kafka.Brokers) > 0 {
			fmt.Printf("Kafka:    %v topic=%s\n", eff.Config.Publisher.Kafka.Brokers, eff.Config.Publisher.Kafka.Topic)
		}
	}

	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("POST /process_query - Submit a customer query (blocks until a ticket is ready)")
	fmt.Println("POST /feedback      - Analyze a customer feedback record")
	fmt.Println("GET  /health        - Liveness plus current queue depth")
	fmt.Println("GET  /metrics       - Prometheus metrics")
	fmt.Println("GET  /docs/         - API documentation")

	fmt.Println("\n== Examples ===================================================")
	fmt.Printf("curl -X POST 'http://localhost%s/process_query' -d '{\"query_id\":\"q1\",\"query_type\":\"text\",\"user_input\":\"my card is blocked\"}'\n", addr)
	fmt.Printf("curl 'http://localhost%s/health'\n", addr)
}
