// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the merged [StructuredConfig] is complete enough to
// start the server.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if cfg.Sync.TokenSecret == "" || cfg.Sync.TokenSalt == "" {
		return fmt.Errorf("%w: sync token secret and salt are required", ErrInvalidSyncConfigs)
	}

	if cfg.Sync.MaxLimit <= 0 || cfg.Sync.MaxItems <= 0 {
		return fmt.Errorf("%w: max limit and max items must be positive", ErrInvalidSyncConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: at least one listen address is required", ErrInvalidServerConfigs)
	}

	return nil
}
