// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import (
	"fmt"

	"github.com/framegrace/sftext/config"
	"github.com/framegrace/sftext/width"
)

// OptionsFromConfig builds Options from the "format" and "width" config
// sections. Missing keys keep their DefaultOptions values. The returned
// options are validated.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	opts := DefaultOptions()
	opts.HalfUnit = cfg.GetInt("format", "half_unit", opts.HalfUnit)
	opts.FullUnit = cfg.GetInt("format", "full_unit", opts.FullUnit)
	opts.Minimize = cfg.GetBool("format", "minimize", opts.Minimize)
	opts.PreserveBlankLines = cfg.GetBool("format", "preserve_blank_lines", opts.PreserveBlankLines)

	fill, err := ParseBlockFill(cfg.GetString("format", "block_fill", opts.BlockFill.String()))
	if err != nil {
		return Options{}, err
	}
	opts.BlockFill = fill

	id := cfg.GetString("width", "classifier", width.DefaultClassifier)
	classifier, err := width.New(id, width.Config(cfg.Section("width")))
	if err != nil {
		return Options{}, fmt.Errorf("tablefmt: classifier: %w", err)
	}
	opts.Classifier = classifier

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
