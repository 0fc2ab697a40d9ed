package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads the environment into a fresh [StructuredConfig] through the
// `env` and `envPrefix` tags. Unset variables leave zero values, which the
// builder fills from flags, the JSON file or defaults.
func parseEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
