package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/PratikDhanave/datos-ingest/internal/config"
	"github.com/PratikDhanave/datos-ingest/internal/httpserver"
	"github.com/PratikDhanave/datos-ingest/internal/kafka"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
}

// main boots the service: config → optional Kafka sink → HTTP server.
func main() {
	// Load runtime config from environment (PORT, KAFKA_BROKERS, KAFKA_TOPIC).
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Received bodies are logged to stdout, one line per request.
	err = run(ctx, cfg, log.New(os.Stdout, "", log.LstdFlags))
	stop()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails. The Kafka writer
// is always closed before run returns so queued records get flushed.
func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	deps := httpserver.Deps{Logger: logger}

	if cfg.SinkEnabled() {
		pub, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := pub.Close(); err != nil {
				logger.Printf("kafka close: %v", err)
			}
		}()
		deps.Sink = pub
		logger.Printf("publishing records to topic %s", cfg.KafkaTopic)
	}

	router := httpserver.NewRouter(deps)
	return httpserver.ListenAndServe(ctx, cfg.Addr(), router, logger)
}
