// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/merge.go
// Summary: Clone and overlay helpers for config maps.

package config

// Clone returns a copy of the config with each section copied one level deep.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for sectionName, section := range cfg {
		if s := asSection(section); s != nil {
			out := make(Section, len(s))
			for key, value := range s {
				out[key] = value
			}
			clone[sectionName] = out
			continue
		}
		clone[sectionName] = section
	}
	return clone
}

// Merge overlays overlay onto a clone of base. Sections are merged key by
// key; top-level scalars in overlay replace those in base.
func Merge(base, overlay Config) Config {
	out := Clone(base)
	if out == nil {
		out = make(Config)
	}
	for name, value := range overlay {
		src := asSection(value)
		dst := asSection(out[name])
		if src == nil || dst == nil {
			if src != nil {
				value = Clone(Config{name: src})[name]
			}
			out[name] = value
			continue
		}
		for key, v := range src {
			dst[key] = v
		}
	}
	return out
}

func asSection(v interface{}) Section {
	switch s := v.(type) {
	case Section:
		return s
	case map[string]interface{}:
		return Section(s)
	}
	return nil
}
