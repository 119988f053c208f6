package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the sidebar service
type Config struct {
	// Server settings
	Port       int
	AdminRoute string

	// Plugin settings
	OptionsFile      string // YAML plugin options, optional
	HostManifestFile string
	DisablePinning   bool // forces enablePinning off regardless of the options file

	// Session tokens
	JWTSecret string
	JWTIssuer string

	// Preference storage: empty keeps records in memory
	PreferencesDB string

	// Logging
	LogLevel  string
	LogFormat string // "console" or "json"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnvInt("PORT", 8000),
		AdminRoute:       getEnv("ADMIN_ROUTE", "/admin"),
		OptionsFile:      os.Getenv("NAV_OPTIONS_FILE"),
		HostManifestFile: os.Getenv("HOST_MANIFEST_FILE"),
		DisablePinning:   getEnvBool("NAV_DISABLE_PINNING", false),
		JWTSecret:        normalizeSecret(os.Getenv("JWT_SECRET")),
		JWTIssuer:        getEnv("JWT_ISSUER", "sidebar"),
		PreferencesDB:    os.Getenv("PREFERENCES_DB"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func normalizeSecret(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "\"") && strings.HasSuffix(trimmed, "\"") && len(trimmed) >= 2 {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	if strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'") && len(trimmed) >= 2 {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	return trimmed
}

// validate checks that all required configuration is present
func (c *Config) validate() error {
	if c.HostManifestFile == "" {
		return fmt.Errorf("HOST_MANIFEST_FILE is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	c.applyDefaults()

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !strings.HasPrefix(c.AdminRoute, "/") {
		return fmt.Errorf("ADMIN_ROUTE must start with /")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be 'console' or 'json')", c.LogFormat)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.AdminRoute == "" {
		c.AdminRoute = "/admin"
	}
	if c.AdminRoute != "/" {
		c.AdminRoute = strings.TrimSuffix(c.AdminRoute, "/")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as int with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets environment variable as bool with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
