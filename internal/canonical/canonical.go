// Package canonical normalizes manufacturer names against a table of known
// aliases, so that data imported under different spellings or nicknames
// collapses to one identity.
package canonical

import (
	_ "embed"
	"strings"

	"github.com/tvalderas/battfit-go/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/make_aliases.yaml
var makeAliasesYAML []byte

// Canonicalizer resolves free-form manufacturer names to canonical ones.
// The lookup table is fixed at construction; Canonicalize is pure and safe
// for concurrent use.
type Canonicalizer struct {
	aliases map[string]string
}

// New builds a Canonicalizer from an alias -> canonical name table. Keys are
// normalized (trimmed, lowercased) and every canonical name gains an identity
// mapping, so canonical input always resolves to itself.
//
// Construction fails when two aliases normalize to the same key but map to
// different canonical names, since that would make lookups ambiguous.
func New(table map[string]string) (*Canonicalizer, error) {
	aliases := make(map[string]string, len(table)*2)

	add := func(alias, canonical string) error {
		key := normalize(alias)
		if key == "" {
			return errors.Newf("alias table contains an empty alias for %q", canonical).
				Component("canonical").
				Category(errors.CategoryValidation).
				Build()
		}
		if existing, ok := aliases[key]; ok && existing != canonical {
			return errors.Newf("alias %q maps to both %q and %q", key, existing, canonical).
				Component("canonical").
				Category(errors.CategoryValidation).
				Build()
		}
		aliases[key] = canonical
		return nil
	}

	for alias, canonical := range table {
		if err := add(alias, canonical); err != nil {
			return nil, err
		}
	}
	// Identity mappings: the canonical spelling is always a valid lookup.
	for _, canonical := range table {
		if err := add(canonical, canonical); err != nil {
			return nil, err
		}
	}

	return &Canonicalizer{aliases: aliases}, nil
}

// Default returns a Canonicalizer over the embedded manufacturer alias table.
func Default() (*Canonicalizer, error) {
	var table map[string]string
	if err := yaml.Unmarshal(makeAliasesYAML, &table); err != nil {
		return nil, errors.New(err).
			Component("canonical").
			Category(errors.CategoryValidation).
			Context("source", "embedded make_aliases.yaml").
			Build()
	}
	return New(table)
}

// Canonicalize returns the canonical manufacturer name for raw. Matching is
// case-insensitive and whitespace-trimmed, exact keys only. Unknown names
// pass through unchanged so incomplete alias coverage never blocks seeding.
func (c *Canonicalizer) Canonicalize(raw string) string {
	if canonical, ok := c.aliases[normalize(raw)]; ok {
		return canonical
	}
	return raw
}

// Known reports whether raw would resolve through the table, either as an
// alias or as a canonical name. Callers use this to flag unresolved names.
func (c *Canonicalizer) Known(raw string) bool {
	_, ok := c.aliases[normalize(raw)]
	return ok
}

// Len returns the number of distinct lookup keys, identity mappings included.
func (c *Canonicalizer) Len() int {
	return len(c.aliases)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
