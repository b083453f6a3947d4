package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort  = 3000
	defaultTopic = "datos-recibidos"
)

// Config contains runtime configuration required by the service.
type Config struct {
	Port         int
	KafkaBrokers []string // empty disables the record sink
	KafkaTopic   string
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SinkEnabled reports whether received records should be published to Kafka.
func (c Config) SinkEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables.
// KAFKA_BROKERS format: "host1:9092,host2:9092"
func Load() (Config, error) {
	port := defaultPort
	if raw := strings.TrimSpace(os.Getenv("PORT")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", raw, err)
		}
		if p < 1 || p > 65535 {
			return Config{}, errors.New("PORT must be between 1 and 65535")
		}
		port = p
	}

	var brokers []string
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if !strings.Contains(b, ":") {
			return Config{}, errors.New(`KAFKA_BROKERS must be "host:port,host:port"`)
		}
		brokers = append(brokers, b)
	}

	topic := strings.TrimSpace(os.Getenv("KAFKA_TOPIC"))
	if topic == "" {
		topic = defaultTopic
	}

	return Config{
		Port:         port,
		KafkaBrokers: brokers,
		KafkaTopic:   topic,
	}, nil
}
