// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Backend names accepted in ARCHIVE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendDiskv    = "diskv"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// ArchiveBackend selects the trip record persistence backend:
	// "file" (default), "diskv", "sqlite", "postgres", or "memory".
	ArchiveBackend string

	// ArchivePath is the data path for the file-based backends: the JSON
	// file for "file", the base directory for "diskv", the database file
	// for "sqlite". Defaults to "data/trip-records".
	ArchivePath string

	// DatabaseURL is the Postgres connection string.
	// Required when ArchiveBackend is "postgres", ignored otherwise.
	DatabaseURL string

	// TripAPIURL is the base URL of the remote trip backend.
	// Empty disables the remote client.
	TripAPIURL string

	// GeocoderURL is the base URL of the Nominatim-compatible geocoder.
	// Defaults to the public OpenStreetMap instance.
	GeocoderURL string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming any required variable that is not set and any
// value outside its accepted set.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ArchiveBackend: getEnv("ARCHIVE_BACKEND", BackendFile),
		ArchivePath:    getEnv("ARCHIVE_PATH", "data/trip-records"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		TripAPIURL:     os.Getenv("TRIP_API_URL"),
		GeocoderURL:    getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	switch cfg.ArchiveBackend {
	case BackendMemory, BackendFile, BackendDiskv, BackendSQLite, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("invalid ARCHIVE_BACKEND %q: must be one of memory, file, diskv, sqlite, postgres", cfg.ArchiveBackend)
	}

	if cfg.ArchiveBackend == BackendPostgres && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("required environment variables not set: DATABASE_URL")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
