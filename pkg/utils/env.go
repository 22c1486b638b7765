package utils

import (
	"os"
	"strings"
	"time"

	"adwiz/pkg/logger"
)

// GetEnvWithDefault returns environment variable or default value
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBoolEnv accepts true/1/yes/on and false/0/no/off. Anything else yields the default.
func GetBoolEnv(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		logger.L().WithField("key", key).Warnf("invalid boolean %q, using default %t", val, defaultValue)
		return defaultValue
	}
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		logger.L().WithField("key", key).Warnf("invalid duration %q, using default %s", val, defaultValue)
		return defaultValue
	}
	return d
}
