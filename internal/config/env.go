package config

import "os"

// GetenvDefault returns the environment value for key, or def when unset or empty.
func GetenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
