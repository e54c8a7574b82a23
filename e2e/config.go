package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// BACKEND_ADDR points at a running upload backend; empty skips the suite.
	BackendAddr  string `envconfig:"BACKEND_ADDR"`
	BackendToken string `envconfig:"BACKEND_TOKEN"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_FILE_MB is the size of the generated test file in megabytes.
	FileMB int `envconfig:"E2E_FILE_MB" default:"1"`
	// E2E_HARDWARE is the processing target asked for in the scenario.
	Hardware string `envconfig:"E2E_HARDWARE" default:"cpu"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
