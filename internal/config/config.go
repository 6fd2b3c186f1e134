// internal/config/config.go
package config

import (
    "fmt"
    "os"
    "strconv"
    "time"
)

// Config holds the service configuration, read once from the environment at
// startup and treated as immutable afterwards.
type Config struct {
    DatabaseURL string

    ResendAPIKey string
    FromAddress  string

    JWTSecret string

    AMQPURL string

    ServerPort string

    SendDelay    time.Duration
    HistoryLimit int
}

// Load reads the configuration from environment variables. Required
// variables missing from the environment are reported together.
func Load() (*Config, error) {
    cfg := &Config{}

    var missing []string

    cfg.DatabaseURL = os.Getenv("DATABASE_URL")
    if cfg.DatabaseURL == "" {
        missing = append(missing, "DATABASE_URL")
    }

    cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
    if cfg.ResendAPIKey == "" {
        missing = append(missing, "RESEND_API_KEY")
    }

    cfg.JWTSecret = os.Getenv("JWT_SECRET")
    if cfg.JWTSecret == "" {
        missing = append(missing, "JWT_SECRET")
    }

    if len(missing) > 0 {
        return nil, fmt.Errorf("required environment variables are not set: %v", missing)
    }

    cfg.FromAddress = getEnvString("CAMPAIGN_FROM_ADDRESS", "Elec-Mate <team@elec-mate.com>")
    cfg.AMQPURL = os.Getenv("AMQP_URL") // optional; empty disables event publishing
    cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
    // Resend allows 2 requests/second; one send every 500ms keeps us inside it.
    cfg.SendDelay = getEnvDuration("CAMPAIGN_SEND_DELAY", 500*time.Millisecond)
    cfg.HistoryLimit = getEnvInt("CAMPAIGN_HISTORY_LIMIT", 50)

    return cfg, nil
}

func getEnvString(key, defaultVal string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
    if v := os.Getenv(key); v != "" {
        if n, err := strconv.Atoi(v); err == nil {
            return n
        }
    }
    return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
    if v := os.Getenv(key); v != "" {
        if d, err := time.ParseDuration(v); err == nil {
            return d
        }
    }
    return defaultVal
}
