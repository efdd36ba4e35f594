package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// PlaceholderDeploymentID marks a gateway URL copied from the setup
// template and never filled in.
const PlaceholderDeploymentID = "YOUR_DEPLOYMENT_ID"

type Config struct {
	// Gateway
	APIURL      string
	HTTPTimeout time.Duration

	// Credentials
	Username    string
	Password    string
	DisplayName string

	// Local state
	StateDBPath    string
	NodeCacheTTL   time.Duration
	NodeCacheSize  int
	CurrencySymbol string

	// Logging
	LogLevel  string
	LogFormat string

	// Events
	EventsBackend string
	AMQPURL       string
	AMQPExchange  string
	AMQPQueue     string
	KafkaBrokers  []string
	KafkaTopic    string

	// Google Sheets export
	GoogleSpreadsheetID      string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Development stub gateway
	StubPort string
}

func Load() *Config {
	cfg := &Config{
		APIURL:      getEnv("VOUCHERS_API_URL", ""),
		HTTPTimeout: getEnvDuration("VOUCHERS_HTTP_TIMEOUT", 30*time.Second),

		Username:    getEnv("VOUCHERS_USERNAME", "koushik"),
		Password:    getEnv("VOUCHERS_PASSWORD", ""),
		DisplayName: getEnv("VOUCHERS_DISPLAY_NAME", "Koushik"),

		StateDBPath:    getEnv("VOUCHERS_STATE_DB", "./data/vouchers.db"),
		NodeCacheTTL:   getEnvDuration("VOUCHERS_NODE_CACHE_TTL", 5*time.Minute),
		NodeCacheSize:  getEnvInt("VOUCHERS_NODE_CACHE_SIZE", 64),
		CurrencySymbol: getEnv("VOUCHERS_CURRENCY", "₹"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		EventsBackend: getEnv("EVENTS_BACKEND", "none"),
		AMQPURL:       getEnv("AMQP_URL", ""),
		AMQPExchange:  getEnv("AMQP_EXCHANGE", "vouchers"),
		AMQPQueue:     getEnv("AMQP_QUEUE", "transaction_events"),
		KafkaBrokers:  getEnvList("KAFKA_BROKERS"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "vouchers.transactions"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		StubPort: getEnv("STUB_GATEWAY_PORT", "8081"),
	}

	return cfg
}

// GatewayConfigured reports whether a real gateway URL is set. An empty URL
// or the untouched template placeholder puts the client in offline mode.
func (c *Config) GatewayConfigured() bool {
	u := strings.TrimSpace(c.APIURL)
	return u != "" && !strings.Contains(u, PlaceholderDeploymentID)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.GatewayConfigured() {
		if parsedURL, err := url.Parse(c.APIURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if strings.TrimSpace(c.Username) == "" {
		errors = append(errors, "username cannot be empty")
	}
	if c.Password == "" {
		errors = append(errors, "VOUCHERS_PASSWORD must be set")
	}

	if c.StateDBPath == "" {
		errors = append(errors, "state database path cannot be empty")
	} else {
		dir := filepath.Dir(c.StateDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create state database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.NodeCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid node cache size %d: must be at least 1", c.NodeCacheSize))
	}
	if c.NodeCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid node cache TTL %v: must not be negative", c.NodeCacheTTL))
	}

	switch c.EventsBackend {
	case "none":
	case "amqp":
		if c.AMQPURL == "" {
			errors = append(errors, "AMQP_URL is required when EVENTS_BACKEND is amqp")
		} else if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when EVENTS_BACKEND is amqp")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when EVENTS_BACKEND is amqp")
		}
	case "kafka":
		if len(c.KafkaBrokers) == 0 {
			errors = append(errors, "KAFKA_BROKERS is required when EVENTS_BACKEND is kafka")
		}
		if c.KafkaTopic == "" {
			errors = append(errors, "Kafka topic cannot be empty when EVENTS_BACKEND is kafka")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid events backend '%s': must be one of [none amqp kafka]", c.EventsBackend))
	}

	if c.GoogleServiceAccountFile != "" {
		if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
		}
	}

	if port, err := strconv.Atoi(c.StubPort); err != nil {
		errors = append(errors, fmt.Sprintf("invalid stub port '%s': must be a number", c.StubPort))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid stub port %d: must be between 1 and 65535", port))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SheetsConfigured reports whether report publishing to Google Sheets can run.
func (c *Config) SheetsConfigured() bool {
	return c.GoogleSpreadsheetID != "" && (c.GoogleServiceAccountJSON != "" || c.GoogleServiceAccountFile != "")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blanks.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
