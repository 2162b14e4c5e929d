// Package envs holds the registry of numbered environments (theorems,
// lemmas, etc.) the transformer recognizes.
package envs

import (
	"fmt"
	"strings"
)

// Spec describes one environment: the marker key, the display name and the
// markdown emphasis delimiter wrapped around the rendered header.
type Spec struct {
	Key  string
	Name string
	Emph string
}

// DuplicateKeyError is returned when two environments share a key.
// Registry construction cannot proceed past it.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate environment key %q", e.Key)
}

// Registry maps environment keys to their specs. It is immutable once built.
type Registry struct {
	specs map[string]Spec
	order []string
}

// Builtins returns the default environments.
func Builtins() []Spec {
	return []Spec{
		{Key: "thm", Name: "Theorem", Emph: "**"},
		{Key: "lem", Name: "Lemma", Emph: "**"},
		{Key: "prop", Name: "Proposition", Emph: "**"},
		{Key: "def", Name: "Definition", Emph: "**"},
		{Key: "rem", Name: "Remark", Emph: "*"},
	}
}

// NewRegistry builds a registry from the built-ins plus custom specs.
// Built-ins register first, so a custom spec reusing a built-in key is
// rejected with DuplicateKeyError.
func NewRegistry(custom []Spec) (*Registry, error) {
	r := &Registry{specs: make(map[string]Spec)}
	for _, s := range Builtins() {
		if err := r.register(s); err != nil {
			return nil, err
		}
	}
	for _, s := range custom {
		if err := r.register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(s Spec) error {
	if s.Key == "" {
		return fmt.Errorf("environment key must not be empty")
	}
	if _, exists := r.specs[s.Key]; exists {
		return &DuplicateKeyError{Key: s.Key}
	}
	r.specs[s.Key] = s
	r.order = append(r.order, s.Key)
	return nil
}

// Lookup returns the spec for a key.
func (r *Registry) Lookup(key string) (Spec, bool) {
	s, ok := r.specs[key]
	return s, ok
}

// Keys returns all registered keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ParseSpecs parses a semicolon-separated list of key:Name:emph triples,
// e.g. "exc:Exercise:**;cor:Corollary:**".
func ParseSpecs(raw string) ([]Spec, error) {
	var specs []Spec
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid environment spec %q: want key:Name:emph", entry)
		}
		specs = append(specs, Spec{
			Key:  strings.TrimSpace(parts[0]),
			Name: strings.TrimSpace(parts[1]),
			Emph: parts[2],
		})
	}
	return specs, nil
}
