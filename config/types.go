// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed getters over the loosely typed section maps.

package config

import (
	"encoding/json"
	"math"
	"strconv"
)

// Section returns the named section or nil if missing. The empty name
// addresses the top level.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	return asSection(c[sectionName])
}

// RegisterDefaults fills keys missing from a section, creating the section
// when needed. Existing keys are kept.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil || len(defaults) == 0 {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section, len(defaults))
		if sectionName != "" {
			c[sectionName] = section
		}
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func (c Config) lookup(sectionName, key string) (interface{}, bool) {
	section := c.Section(sectionName)
	if section == nil {
		return nil, false
	}
	v, ok := section[key]
	return v, ok && v != nil
}

// GetString returns a string value, or defaultValue when the key is missing
// or not a string.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	if v, ok := c.lookup(sectionName, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetInt returns an integer value. JSON numbers and numeric strings are
// accepted; fractional numbers are not.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	if v, ok := c.lookup(sectionName, key); ok {
		if n, ok := toInt(v); ok {
			return n
		}
	}
	return defaultValue
}

// GetBool returns a boolean value. Strings such as "true" or "0" and
// numbers (non-zero is true) are accepted.
func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	if v, ok := c.lookup(sectionName, key); ok {
		if b, ok := toBool(v); ok {
			return b
		}
	}
	return defaultValue
}

// GetStringSlice returns a list of strings. A single string is returned as
// a one-element slice and non-string list items are dropped.
func (c Config) GetStringSlice(sectionName, key string, defaultValue []string) []string {
	v, ok := c.lookup(sectionName, key)
	if !ok {
		return defaultValue
	}
	switch v := v.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return defaultValue
}

func toInt(v interface{}) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}

func toBool(v interface{}) (bool, bool) {
	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	default:
		if n, ok := toInt(v); ok {
			return n != 0, true
		}
	}
	return false, false
}
