package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanonicalizer(t *testing.T) *Canonicalizer {
	t.Helper()
	c, err := New(map[string]string{
		"VW":         "Volkswagen",
		"Volkswagon": "Volkswagen",
		"benz":       "Mercedes-Benz",
		"mercedes":   "Mercedes-Benz",
	})
	require.NoError(t, err)
	return c
}

func TestCanonicalizeAliases(t *testing.T) {
	c := newTestCanonicalizer(t)

	t.Run("KnownAlias", func(t *testing.T) {
		assert.Equal(t, "Volkswagen", c.Canonicalize("VW"))
		assert.Equal(t, "Volkswagen", c.Canonicalize("Volkswagon"))
		assert.Equal(t, "Mercedes-Benz", c.Canonicalize("benz"))
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		assert.Equal(t, "Volkswagen", c.Canonicalize("vw"))
		assert.Equal(t, "Volkswagen", c.Canonicalize("vW"))
		assert.Equal(t, "Mercedes-Benz", c.Canonicalize("MERCEDES"))
	})

	t.Run("WhitespaceTrimmed", func(t *testing.T) {
		assert.Equal(t, "Volkswagen", c.Canonicalize("  vw  "))
		assert.Equal(t, "Mercedes-Benz", c.Canonicalize("\tbenz\n"))
	})

	t.Run("IdempotentOnCanonical", func(t *testing.T) {
		assert.Equal(t, "Volkswagen", c.Canonicalize("Volkswagen"))
		assert.Equal(t, "Mercedes-Benz", c.Canonicalize("Mercedes-Benz"))
		// And case variants of the canonical spelling itself.
		assert.Equal(t, "Volkswagen", c.Canonicalize("volkswagen"))
	})

	t.Run("UnknownPassesThrough", func(t *testing.T) {
		assert.Equal(t, "Toyota", c.Canonicalize("Toyota"))
		assert.Equal(t, "", c.Canonicalize(""))
	})

	t.Run("NoSubstringMatching", func(t *testing.T) {
		// "volks" is not a key in this table; a prefix of a known alias
		// must not normalize.
		assert.Equal(t, "volks", c.Canonicalize("volks"))
	})
}

func TestKnown(t *testing.T) {
	c := newTestCanonicalizer(t)

	assert.True(t, c.Known("vw"))
	assert.True(t, c.Known("Volkswagen"))
	assert.False(t, c.Known("volks"))
	assert.False(t, c.Known("Toyota"))
}

func TestNewRejectsAmbiguousAliases(t *testing.T) {
	// "vw" and "VW " normalize to the same key but disagree on the
	// canonical name.
	_, err := New(map[string]string{
		"vw":  "Volkswagen",
		"VW ": "Volvo",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maps to both")
}

func TestNewRejectsEmptyAlias(t *testing.T) {
	_, err := New(map[string]string{"   ": "Volkswagen"})
	require.Error(t, err)
}

func TestDefaultTable(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	// Spot checks against the shipped table.
	assert.Equal(t, "Mercedes-Benz", c.Canonicalize("mercedez"))
	assert.Equal(t, "Volkswagen", c.Canonicalize("volkswagon"))
	assert.Equal(t, "Chevrolet", c.Canonicalize("Chevy"))
	assert.Equal(t, "ALFA", c.Canonicalize("Alfa Romeo"))
	assert.Equal(t, "BMW", c.Canonicalize("beemer"))

	// Canonical names resolve to themselves.
	assert.Equal(t, "Mercedes-Benz", c.Canonicalize("Mercedes-Benz"))
	assert.Equal(t, "ALFA", c.Canonicalize("ALFA"))
}
