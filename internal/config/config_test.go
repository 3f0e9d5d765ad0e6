package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "API_BASE_URL_HTTP", "API_USE_HTTPS", "API_TIMEOUT", "ITEMS_PER_PAGE", "MAX_GUESTS_PER_RESERVATION", "SESSION_STORE", "KAFKA_BROKERS", "KAFKA_BROKER", "PORT", "JWT_STORAGE_KEY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.REST.BaseURL() != "https://localhost:7001/api" {
		t.Fatalf("expected https base url, got %s", cfg.REST.BaseURL())
	}
	if cfg.REST.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %s", cfg.REST.Timeout)
	}
	if cfg.App.ItemsPerPage != 10 || cfg.App.MaxGuests != 20 {
		t.Fatalf("unexpected app defaults: %+v", cfg.App)
	}
	if cfg.Session.Store != SessionStoreMemory || cfg.Session.TokenKey != "authToken" {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("expected kafka disabled, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Server.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_USE_HTTPS", "false")
	t.Setenv("API_BASE_URL_HTTP", "http://backend:5001/api")
	t.Setenv("API_TIMEOUT", "3")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_RESERVATION_TOPICS", "bookings")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.REST.BaseURL() != "http://backend:5001/api" {
		t.Fatalf("expected http base url, got %s", cfg.REST.BaseURL())
	}
	if cfg.REST.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.REST.Timeout)
	}
	if cfg.Session.Store != SessionStoreRedis {
		t.Fatalf("expected redis store, got %s", cfg.Session.Store)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if len(cfg.Kafka.ReservationTopics) != 1 || cfg.Kafka.ReservationTopics[0] != "bookings" {
		t.Fatalf("unexpected topics: %v", cfg.Kafka.ReservationTopics)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	cases := map[string]string{
		"ITEMS_PER_PAGE":             "ten",
		"API_TIMEOUT":                "soon",
		"API_USE_HTTPS":              "maybe",
		"SESSION_STORE":              "sqlite",
		"MAX_GUESTS_PER_RESERVATION": "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
