package utils

import (
	"log"
	"os"
	"strconv"
	"time"
)

// lookupEnv returns the parsed value of key, or defaultValue when the key is
// unset or cannot be parsed.
func lookupEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	value, err := parse(raw)
	if err != nil {
		log.Printf("Error parsing %s=%q: %v, will use default value %v", key, raw, err, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvString(key, defaultValue string) string {
	return lookupEnv(key, defaultValue, func(raw string) (string, error) { return raw, nil })
}

func GetEnvInt(key string, defaultValue int) int {
	return lookupEnv(key, defaultValue, strconv.Atoi)
}

func GetEnvBool(key string, defaultValue bool) bool {
	return lookupEnv(key, defaultValue, strconv.ParseBool)
}

// GetEnvDuration accepts values understood by time.ParseDuration, e.g. "250ms".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return lookupEnv(key, defaultValue, time.ParseDuration)
}
