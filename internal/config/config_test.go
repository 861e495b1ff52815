package config

import (
	"testing"
	"time"
)

func Test_Load_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load err: %v", err)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected IsDev true")
	}
	if cfg.IsProd() {
		t.Fatalf("expected IsProd false")
	}
	if cfg.Port != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.Port)
	}
	if cfg.QuestionCacheTTL != 30*time.Minute {
		t.Fatalf("unexpected cache ttl: %v", cfg.QuestionCacheTTL)
	}
	if cfg.ConsumerGroup != "interview-engine-scoring" {
		t.Fatalf("unexpected consumer group: %q", cfg.ConsumerGroup)
	}
}

func Test_Load_BrokerListParsing(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-a:9092,broker-b:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load err: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 {
		t.Fatalf("brokers not parsed: %+v", cfg.KafkaBrokers)
	}
	if cfg.KafkaBrokers[1] != "broker-b:9092" {
		t.Fatalf("unexpected broker: %q", cfg.KafkaBrokers[1])
	}
}
