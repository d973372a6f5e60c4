/*
main.go - Application entry point

PURPOSE:
  Starts the insights API server. Loads the dataset, runs the
  preparation pipeline once, and serves the aggregated tables over HTTP
  with graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load config (or demo fallback)
  3. Build the pipeline (load, prepare, enrich)
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (default: 8080)
  -config   YAML config path selecting the data source and periods
  -demo     Serve the built-in sample dataset (no config needed)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Serve the real dataset
  ./server -config=./insights.yaml

  # Explore the API without data
  ./server -demo -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - factory/pipeline.go: Pipeline assembly
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meridian/commerce-insights/api"
	"github.com/meridian/commerce-insights/factory"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	configPath := flag.String("config", "", "YAML config path")
	demo := flag.Bool("demo", false, "serve the built-in sample dataset")
	flag.Parse()

	cfg, err := resolveConfig(*configPath, *demo)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pipeline, err := factory.Build(cfg)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}
	log.Printf("Prepared %d analysis rows (analysis year %d, comparison year %d)",
		pipeline.Analysis.Len(), pipeline.Engine.AnalysisYear(), pipeline.Engine.ComparisonYear())

	router := api.NewRouter(api.NewHandler(pipeline))
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,
	}

	go func() {
		log.Printf("Insights server listening on :%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func resolveConfig(path string, demo bool) (*factory.Config, error) {
	if path != "" {
		return factory.LoadConfig(path)
	}
	if demo {
		return factory.DemoConfig(), nil
	}
	return nil, fmt.Errorf("either -config or -demo is required")
}
