// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package version reports the formatter version and checks it against the
// constraint a project config may pin, since padding output can change
// between releases.
package version

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the formatter release.
const Version = "0.4.0"

// ErrUnsupported is returned when Version does not satisfy a constraint.
var ErrUnsupported = errors.New("version: formatter version not allowed by config")

// Check reports whether Version satisfies constraint. An empty constraint
// always passes.
func Check(constraint string) error {
	return check(Version, constraint)
}

func check(current, constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("version: constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("version: %q: %w", current, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %q", ErrUnsupported, current, constraint)
	}
	return nil
}
