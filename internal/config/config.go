package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the server configuration, sourced from the environment.
type Config struct {
	Addr     string
	DataPath string
}

const (
	defaultAddr     = ":8080"
	defaultDataPath = "historical_automobile_sales.csv"
)

// Load reads an optional env file and builds the configuration from the
// environment. A missing env file is not an error; defaults apply for any
// unset variable.
func Load(envFile string) Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	cfg := Config{Addr: defaultAddr, DataPath: defaultDataPath}
	if v := os.Getenv("DASHBOARD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DASHBOARD_DATA"); v != "" {
		cfg.DataPath = v
	}
	return cfg
}
