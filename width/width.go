// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package width decides whether a character is half-width or full-width for
// the column aligner. Classifiers self-register at init time and are built
// from a per-classifier Config, so no process-wide classifier state exists.
package width

import (
	"errors"
	"fmt"
	"sync"
)

// Class is the width class of a single code point.
type Class int

const (
	Half Class = iota // occupies half of a full-width cell
	Full              // occupies a full cell (CJK ideographs, fullwidth forms)
)

// String returns "half" or "full".
func (c Class) String() string {
	if c == Half {
		return "half"
	}
	return "full"
}

var (
	// ErrUnknownClassifier is returned by New for an unregistered id.
	ErrUnknownClassifier = errors.New("width: unknown classifier")
	// ErrInvalidCharset is returned when a charset cannot be compiled.
	ErrInvalidCharset = errors.New("width: invalid charset")
)

// Classifier maps a rune to its width class. Implementations must be safe
// for concurrent use once constructed.
type Classifier interface {
	Classify(r rune) Class
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(r rune) Class

// Classify implements Classifier.
func (f ClassifierFunc) Classify(r rune) Class { return f(r) }

// Config holds per-classifier configuration.
type Config map[string]interface{}

// Factory creates a Classifier from config.
type Factory func(Config) (Classifier, error)

// DefaultClassifier is the classifier id used when none is configured.
const DefaultClassifier = "charset"

// --- Registry ---

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a classifier factory to the global registry.
// Panics on duplicate registration.
func Register(id string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		panic("width: duplicate registration for " + id)
	}
	registry[id] = factory
}

// Lookup returns the factory for a given classifier ID.
func Lookup(id string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[id]
	return f, ok
}

// New builds the classifier registered under id. An empty id selects
// DefaultClassifier.
func New(id string, cfg Config) (Classifier, error) {
	if id == "" {
		id = DefaultClassifier
	}
	factory, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClassifier, id)
	}
	return factory(cfg)
}

// Count returns the number of half-width and full-width runes in s.
func Count(c Classifier, s string) (half, full int) {
	for _, r := range s {
		if c.Classify(r) == Half {
			half++
		} else {
			full++
		}
	}
	return half, full
}

func boolOption(cfg Config, key string) bool {
	v, ok := cfg[key].(bool)
	return ok && v
}

func stringOption(cfg Config, key, defaultValue string) string {
	if v, ok := cfg[key].(string); ok && v != "" {
		return v
	}
	return defaultValue
}
