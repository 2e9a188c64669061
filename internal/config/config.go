package config

import (
	"errors"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort           string
	AppEnv            string
	APIBaseURL        string
	UpstreamTimeout   time.Duration
	DetailTimeout     time.Duration
	SessionTTL        time.Duration
	AllowedOrigins    []string
	InternalSecretKey string
	SendGridAPIKey    string
	LeadNotifyFrom    string
	LeadNotifyTo      string
}

var errMissingHost = errors.New("missing scheme or host")

const (
	defaultPort            = "8080"
	defaultAPIBaseURL      = "https://eden-stone.ru"
	defaultUpstreamTimeout = 15 * time.Second
	defaultDetailTimeout   = 12 * time.Second
	defaultSessionTTL      = 30 * time.Minute
)

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg, err := fromEnv()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}

	return cfg
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		AppPort:           getEnv("APP_PORT", defaultPort),
		AppEnv:            os.Getenv("APP_ENV"),
		APIBaseURL:        strings.TrimRight(getEnv("API_BASE_URL", defaultAPIBaseURL), "/"),
		AllowedOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		LeadNotifyFrom:    os.Getenv("LEAD_NOTIFY_FROM"),
		LeadNotifyTo:      os.Getenv("LEAD_NOTIFY_TO"),
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: cfg.APIBaseURL, Err: errMissingHost}
	}

	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", defaultUpstreamTimeout); err != nil {
		return nil, err
	}
	if cfg.DetailTimeout, err = getDuration("DETAIL_TIMEOUT", defaultDetailTimeout); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LeadNotificationsEnabled reports whether every SendGrid setting is present.
func (c *Config) LeadNotificationsEnabled() bool {
	return c.SendGridAPIKey != "" && c.LeadNotifyFrom != "" && c.LeadNotifyTo != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
