package main

import (
	"fmt"
	"os"

	"github.com/withoutfanfare/developer-test/internal/config"
)

// configFileEnv names an explicit config file, overriding the search path.
const configFileEnv = "TASKREPORT_CONFIG_FILE"

// loadAppConfig loads configuration from TASKREPORT_CONFIG_FILE when set,
// otherwise from config.yaml on the search path and the environment.
func loadAppConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := os.Getenv(configFileEnv); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
