// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and reload logic for the system config.

package config

import "log"

// loadSystemLocked reads the system config into system. Only a file that
// exists but cannot be read or parsed is reported; without a usable path,
// or when the defaults cannot be written back, the built-in defaults apply.
func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.Printf("Config: Failed to resolve system config path, using defaults: %v", err)
		system = Defaults()
		return nil
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read system config %s: %v", path, readErr)
		system = Defaults()
		return readErr
	}

	if !exists || len(cfg) == 0 {
		cfg = Defaults()
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write default system config: %v", err)
		}
	} else {
		applySystemDefaults(cfg)
		log.Printf("Config: Loaded system config from %s", path)
	}

	system = cfg
	return nil
}
