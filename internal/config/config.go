package config // package config loads application configuration from environment variables

import (
	"log" // log reports configuration errors and halts execution
	"os"  // os provides access to environment variables
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The three base URLs identify the remote
// backend services the portal talks to; they are deployment-specific and
// therefore always required.
type Config struct {
	Env                string        // application environment (e.g. "dev", "prod")
	Port               string        // HTTP port the portal listens on
	AuthBaseURL        string        // base URL of the auth/user service
	StallBaseURL       string        // base URL of the stall service
	ReservationBaseURL string        // base URL of the reservation service
	SessionTTL         time.Duration // fallback session lifetime when the token carries no expiry
	RequestTimeout     time.Duration // per-request timeout for remote service calls
}

// Load reads configuration values from environment variables and returns
// a Config.  A local .env file is applied first when present so that
// development setups need no exported variables.  Required variables are
// enforced by must() and missing values cause the program to exit with a
// fatal log message.
func Load() Config {
	_ = godotenv.Load() // absent .env is fine outside development

	return Config{
		Env:                must("APP_ENV"),
		Port:               must("APP_PORT"),
		AuthBaseURL:        must("AUTH_SERVICE_URL"),
		StallBaseURL:       must("STALL_SERVICE_URL"),
		ReservationBaseURL: must("RESERVATION_SERVICE_URL"),
		SessionTTL:         parseDur(getenv("SESSION_TTL", "12h")),
		RequestTimeout:     parseDur(getenv("REQUEST_TIMEOUT", "15s")),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of key or def when unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
