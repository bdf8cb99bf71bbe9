// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Fallback values for keys missing from the system config file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("sftext", Section{
		"required_version": "",
	})
	cfg.RegisterDefaults("format", Section{
		"half_unit":            2,
		"full_unit":            1,
		"minimize":             false,
		"block_fill":           "half",
		"preserve_blank_lines": true,
	})
	cfg.RegisterDefaults("width", Section{
		"classifier":     "charset",
		"ambiguous_full": false,
	})
	cfg.RegisterDefaults("files", Section{
		"extensions":  []interface{}{".sftext"},
		"skip_vendor": true,
	})
	cfg.RegisterDefaults("cache", Section{
		"enabled": true,
		"path":    "",
	})
	cfg.RegisterDefaults("watch", Section{
		"debounce_ms": 200,
	})
}
