package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type SessionStoreKind string

const (
	SessionStoreMemory SessionStoreKind = "memory"
	SessionStoreFile   SessionStoreKind = "file"
	SessionStoreRedis  SessionStoreKind = "redis"
)

type Config struct {
	Server    ServerConfig
	REST      RESTConfig
	App       AppConfig
	Session   SessionConfig
	Redis     RedisConfig
	Logging   LoggingConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
}

type ServerConfig struct {
	Port string
}

type RESTConfig struct {
	HTTPSBaseURL string
	HTTPBaseURL  string
	UseHTTPS     bool
	Timeout      time.Duration
}

// BaseURL picks the HTTPS or plain HTTP backend URL.
func (c RESTConfig) BaseURL() string {
	if c.UseHTTPS {
		return c.HTTPSBaseURL
	}
	return c.HTTPBaseURL
}

type AppConfig struct {
	Title        string
	Version      string
	ItemsPerPage int
	MaxGuests    int
}

type SessionConfig struct {
	Store    SessionStoreKind
	File     string
	TokenKey string
	UserKey  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type KafkaConfig struct {
	Brokers           []string
	GroupID           string
	ReservationTopics []string
}

type WebsocketConfig struct {
	AllowedActions []string
}

// Load reads the configuration from the environment. Unset variables take
// their defaults; malformed numbers, booleans and durations are errors.
func Load() (*Config, error) {
	var errs []string
	intVar := func(key string, def int) int {
		n, err := envInt(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return n
	}

	useHTTPS, err := envBool("API_USE_HTTPS", true)
	if err != nil {
		errs = append(errs, err.Error())
	}
	timeout, err := envDuration("API_TIMEOUT", 10*time.Second)
	if err != nil {
		errs = append(errs, err.Error())
	}

	cfg := &Config{
		Server: ServerConfig{Port: env("PORT", "8080")},
		REST: RESTConfig{
			HTTPSBaseURL: env("API_BASE_URL", "https://localhost:7001/api"),
			HTTPBaseURL:  env("API_BASE_URL_HTTP", "http://localhost:5001/api"),
			UseHTTPS:     useHTTPS,
			Timeout:      timeout,
		},
		App: AppConfig{
			Title:        env("APP_TITLE", "Reservations Happiness"),
			Version:      env("APP_VERSION", "1.0.0"),
			ItemsPerPage: intVar("ITEMS_PER_PAGE", 10),
			MaxGuests:    intVar("MAX_GUESTS_PER_RESERVATION", 20),
		},
		Session: SessionConfig{
			Store:    SessionStoreKind(strings.ToLower(env("SESSION_STORE", string(SessionStoreMemory)))),
			File:     env("SESSION_FILE", "./data/session.json"),
			TokenKey: env("JWT_STORAGE_KEY", "authToken"),
			UserKey:  env("USER_STORAGE_KEY", "currentUser"),
		},
		Redis: RedisConfig{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       intVar("REDIS_DB", 0),
			Prefix:   env("REDIS_PREFIX", "reservations:"),
		},
		Logging: LoggingConfig{
			Directory: env("LOG_DIR", "./logs"),
			Level:     env("LOG_LEVEL", "info"),
			Format:    env("LOG_FORMAT", "text"),
		},
		Kafka: KafkaConfig{
			Brokers:           envList("KAFKA_BROKERS", envList("KAFKA_BROKER", nil)),
			GroupID:           env("KAFKA_GROUP_ID", "reservations-client"),
			ReservationTopics: envList("KAFKA_RESERVATION_TOPICS", []string{"reservations.events"}),
		},
		Websocket: WebsocketConfig{
			AllowedActions: envList("WS_ALLOWED_ACTIONS", []string{"created", "updated", "deleted", "snapshot"}),
		},
	}

	switch cfg.Session.Store {
	case SessionStoreMemory, SessionStoreFile, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Sprintf("SESSION_STORE: unsupported store %q", cfg.Session.Store))
	}
	if cfg.App.ItemsPerPage <= 0 {
		errs = append(errs, "ITEMS_PER_PAGE: must be positive")
	}
	if cfg.App.MaxGuests <= 0 {
		errs = append(errs, "MAX_GUESTS_PER_RESERVATION: must be positive")
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("%s: invalid int %q", key, raw)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%s: invalid bool %q", key, raw)
	}
	return b, nil
}

// envDuration accepts Go durations ("15s") and bare integers as seconds.
func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func envList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
