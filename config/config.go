package config

import (
	"os"
	"time"
)

// Settings holds the process configuration, loaded once from the
// environment. Immutable after Load.
type Settings struct {
	// APIURL is the base URL of the external backend service.
	APIURL string

	// Addr is the listen address for the dashboard server.
	Addr string

	// DataDir holds the sqlite databases and export scratch space.
	DataDir string

	// PollInterval is how often the live-flight list is re-fetched.
	PollInterval time.Duration

	// StatsInterval is how often telemetry summary stats are re-fetched.
	StatsInterval time.Duration

	// MonitorInterval is how often backend reachability is probed.
	MonitorInterval time.Duration
}

// Load reads settings from the environment, falling back to defaults.
func Load() Settings {
	return Settings{
		APIURL:          getEnv("UBICAIR_API_URL", "http://localhost:3000"),
		Addr:            getEnv("UBICAIR_ADDR", ":8080"),
		DataDir:         getEnv("UBICAIR_DATA_DIR", "data"),
		PollInterval:    getEnvDuration("UBICAIR_POLL_INTERVAL", 3*time.Second),
		StatsInterval:   getEnvDuration("UBICAIR_STATS_INTERVAL", 10*time.Second),
		MonitorInterval: getEnvDuration("UBICAIR_MONITOR_INTERVAL", 15*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
