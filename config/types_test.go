// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTypedGetters(t *testing.T) {
	var cfg Config
	raw := `{"format": {"half_unit": 3, "minimize": "true", "block_fill": "full"},
	         "files": {"extensions": [".sftext", ".sft"]}}`
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatal(err)
	}
	if got := cfg.GetInt("format", "half_unit", 0); got != 3 {
		t.Errorf("GetInt = %d, want 3", got)
	}
	if !cfg.GetBool("format", "minimize", false) {
		t.Error("GetBool should parse string booleans")
	}
	if got := cfg.GetString("format", "block_fill", "half"); got != "full" {
		t.Errorf("GetString = %q, want full", got)
	}
	if got := cfg.GetString("missing", "key", "dflt"); got != "dflt" {
		t.Errorf("GetString on missing section = %q", got)
	}
	want := []string{".sftext", ".sft"}
	if got := cfg.GetStringSlice("files", "extensions", nil); !reflect.DeepEqual(got, want) {
		t.Errorf("GetStringSlice = %v, want %v", got, want)
	}
}

func TestRegisterDefaultsKeepsExisting(t *testing.T) {
	cfg := Config{"format": map[string]interface{}{"half_unit": 5}}
	cfg.RegisterDefaults("format", Section{"half_unit": 2, "full_unit": 1})
	if got := cfg.GetInt("format", "half_unit", 0); got != 5 {
		t.Errorf("existing key overwritten: %d", got)
	}
	if got := cfg.GetInt("format", "full_unit", 0); got != 1 {
		t.Errorf("default not registered: %d", got)
	}
}

func TestMergeDoesNotAliasBase(t *testing.T) {
	base := Config{"format": Section{"half_unit": 2}, "name": "base"}
	merged := Merge(base, Config{"format": Section{"minimize": true}, "name": "overlay"})

	if merged.GetInt("format", "half_unit", 0) != 2 || !merged.GetBool("format", "minimize", false) {
		t.Fatalf("unexpected merge result: %v", merged)
	}
	if merged["name"] != "overlay" {
		t.Errorf("top-level scalar not replaced: %v", merged["name"])
	}
	if _, ok := base.Section("format")["minimize"]; ok {
		t.Error("Merge modified base")
	}
}

func TestGetIntAndBoolCoercion(t *testing.T) {
	cfg := Config{"s": Section{
		"whole":    float64(4),
		"frac":     2.5,
		"numstr":   "7",
		"badstr":   "seven",
		"one":      float64(1),
		"zero":     0,
		"nullable": nil,
	}}
	tests := []struct {
		key  string
		want int
	}{
		{"whole", 4},
		{"frac", -1},
		{"numstr", 7},
		{"badstr", -1},
		{"nullable", -1},
		{"absent", -1},
	}
	for _, tt := range tests {
		if got := cfg.GetInt("s", tt.key, -1); got != tt.want {
			t.Errorf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
	if !cfg.GetBool("s", "one", false) {
		t.Error("GetBool(one) = false, want true")
	}
	if cfg.GetBool("s", "zero", true) {
		t.Error("GetBool(zero) = true, want false")
	}
	if !cfg.GetBool("s", "badstr", true) {
		t.Error("GetBool(badstr) should fall back to the default")
	}
}
