// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/hcl.go
// Summary: HCL form of config overlays; each block is a section.

package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

func isHCL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".hcl")
}

// decodeHCL reads an overlay such as
//
//	format {
//	  half_unit = 2
//	  minimize  = true
//	}
//
// into the same shape the JSON loader produces. Numbers become float64 and
// lists become []interface{}, matching encoding/json.
func decodeHCL(data []byte, path string) (Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", path, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("config: parse %s: unexpected body type %T", path, file.Body)
	}
	if len(body.Attributes) > 0 {
		name := slices.Sorted(maps.Keys(body.Attributes))[0]
		return nil, fmt.Errorf("config: %s: attribute %q must be inside a section block", path, name)
	}

	cfg := make(Config)
	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return nil, fmt.Errorf("config: %s: section %q takes no labels", path, block.Type)
		}
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("config: %s: section %q: %w", path, block.Type, diags)
		}
		section := asSection(cfg[block.Type])
		if section == nil {
			section = make(Section)
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("config: %s: %s.%s: %w", path, block.Type, name, diags)
			}
			v, err := ctyToInterface(val)
			if err != nil {
				return nil, fmt.Errorf("config: %s: %s.%s: %w", path, block.Type, name, err)
			}
			section[name] = v
		}
		cfg[block.Type] = section
	}
	return cfg, nil
}

func ctyToInterface(val cty.Value) (interface{}, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]interface{}, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			item, err := ctyToInterface(v)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]interface{})
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			item, err := ctyToInterface(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = item
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
