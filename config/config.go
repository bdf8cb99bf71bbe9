// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System configuration store for sftext.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

const (
	systemConfigName = "sftext.json"
	// ProjectConfigName is the per-directory overlay picked up by the CLI.
	ProjectConfigName = ".sftext.json"
	// ProjectHCLConfigName is the HCL form of the overlay, tried second.
	ProjectHCLConfigName = ".sftext.hcl"
)

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	loadErr error
)

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the system configuration (sftext.json in the user config
// directory), with defaults applied.
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Reload refreshes the system config from disk.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadSystemLocked()
	return loadErr
}

// SaveSystem persists the current system config to disk.
func SaveSystem() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	return writeConfig(path, system)
}

// SetSystem replaces the in-memory system config with the provided config.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	system = Clone(cfg)
}

// LoadFile reads a JSON config overlay. Unlike the system config, a missing
// file is an error.
func LoadFile(path string) (Config, error) {
	cfg, exists, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("config: %s: %w", path, os.ErrNotExist)
	}
	return cfg, nil
}

// Resolve returns the system config merged with the overlay at path. With an
// empty path, ProjectConfigName or ProjectHCLConfigName in dir is used when
// present.
func Resolve(path, dir string) (Config, error) {
	cfg := Clone(System())
	if path == "" {
		for _, name := range []string{ProjectConfigName, ProjectHCLConfigName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}
	overlay, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Merge(cfg, overlay), nil
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	loadErr = loadSystemLocked()
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// A file in place of a parent directory also means no config here.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if isHCL(path) {
		cfg, err := decodeHCL(data, path)
		return cfg, true, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg == nil {
		cfg = make(Config)
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
