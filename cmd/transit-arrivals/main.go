package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/theoremus-urban-solutions/transit-arrivals/aggregator"
	"github.com/theoremus-urban-solutions/transit-arrivals/config"
	"github.com/theoremus-urban-solutions/transit-arrivals/formatter"
	"github.com/theoremus-urban-solutions/transit-arrivals/internal"
	"github.com/theoremus-urban-solutions/transit-arrivals/server"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	configPath := flag.String("config", "", "YAML or TOML config file (default: config.yml, config.yaml or config.toml, else built-in)")
	debug := flag.Bool("debug", false, "enable debug logging")
	timeout := flag.Duration("timeout", 30*time.Second, "oneshot deadline for the whole aggregation")
	flag.Parse()

	internal.InitLogging()

	cfg, source, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.LoggerSetDebug(*debug || cfg.Server.Debug))
	logger.Printf("configuration loaded from %s: %d rail groups, %d bus groups", source, len(cfg.Rail), len(cfg.Bus))

	svc := aggregator.FromConfig(cfg, aggregator.WithLogger(logger))

	switch *mode {
	case "serve":
		srv := server.New(cfg.Server, svc, server.WithLogger(logger))
		if err := srv.Start(); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
		srv.HandleGracefulShutdown(context.Background())
	case "oneshot":
		os.Exit(oneshot(svc, *timeout))
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func oneshot(svc *aggregator.Service, timeout time.Duration) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := svc.GetAllArrivals(ctx)
	if err != nil {
		log.Printf("failed to fetch arrival data: %v", err)
		return 1
	}
	buf, err := formatter.NewResponseBuilder().WithIndent("  ").BuildJSON(formatter.BuildPayload(res))
	if err != nil {
		log.Printf("failed to encode arrival data: %v", err)
		return 1
	}
	fmt.Println(string(buf))
	return 0
}
