package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandString(t *testing.T) {
	t.Run("LiteralPassesThrough", func(t *testing.T) {
		got, err := ExpandString("plain-password")
		require.NoError(t, err)
		assert.Equal(t, "plain-password", got)
	})

	t.Run("EmptyString", func(t *testing.T) {
		got, err := ExpandString("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ExpandsVariable", func(t *testing.T) {
		t.Setenv("BATTFIT_TEST_SECRET", "hunter2")
		got, err := ExpandString("${BATTFIT_TEST_SECRET}")
		require.NoError(t, err)
		assert.Equal(t, "hunter2", got)
	})

	t.Run("DefaultUsedWhenUnset", func(t *testing.T) {
		got, err := ExpandString("${BATTFIT_TEST_UNSET_VAR:-fallback}")
		require.NoError(t, err)
		assert.Equal(t, "fallback", got)
	})

	t.Run("DefaultIgnoredWhenSet", func(t *testing.T) {
		t.Setenv("BATTFIT_TEST_SECRET", "hunter2")
		got, err := ExpandString("${BATTFIT_TEST_SECRET:-fallback}")
		require.NoError(t, err)
		assert.Equal(t, "hunter2", got)
	})

	t.Run("MissingVariableErrors", func(t *testing.T) {
		_, err := ExpandString("${BATTFIT_TEST_UNSET_VAR}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BATTFIT_TEST_UNSET_VAR")
	})
}

func writeSecretFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db_password")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Run("ReadsAndTrimsTrailingNewlines", func(t *testing.T) {
		path := writeSecretFile(t, "hunter2\n")
		got, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hunter2", got)
	})

	t.Run("PreservesInteriorWhitespace", func(t *testing.T) {
		path := writeSecretFile(t, "pass word\r\n")
		got, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "pass word", got)
	})

	t.Run("EmptyPathErrors", func(t *testing.T) {
		_, err := ReadFile("")
		assert.Error(t, err)
	})

	t.Run("MissingFileErrors", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("EmptyFileErrors", func(t *testing.T) {
		path := writeSecretFile(t, "\n")
		_, err := ReadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("OversizedFileErrors", func(t *testing.T) {
		path := writeSecretFile(t, strings.Repeat("x", maxSecretFileSize+1))
		_, err := ReadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})
}

func TestResolve(t *testing.T) {
	t.Run("FileTakesPrecedence", func(t *testing.T) {
		path := writeSecretFile(t, "from-file\n")
		got, err := Resolve(path, "from-value")
		require.NoError(t, err)
		assert.Equal(t, "from-file", got)
	})

	t.Run("ValueWithExpansion", func(t *testing.T) {
		t.Setenv("BATTFIT_TEST_SECRET", "hunter2")
		got, err := Resolve("", "${BATTFIT_TEST_SECRET}")
		require.NoError(t, err)
		assert.Equal(t, "hunter2", got)
	})

	t.Run("BothEmptyIsEmpty", func(t *testing.T) {
		got, err := Resolve("", "")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCredential(t *testing.T) {
	t.Run("ZeroValueIsEmpty", func(t *testing.T) {
		var cred Credential
		assert.True(t, cred.IsZero())

		err := cred.Use(func(secret string) error {
			assert.Empty(t, secret)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("UseYieldsSealedSecret", func(t *testing.T) {
		cred := NewCredential("hunter2")
		assert.False(t, cred.IsZero())

		var seen string
		err := cred.Use(func(secret string) error {
			seen = secret
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "hunter2", seen)
	})

	t.Run("UseIsRepeatable", func(t *testing.T) {
		cred := NewCredential("hunter2")
		for i := 0; i < 3; i++ {
			err := cred.Use(func(secret string) error {
				assert.Equal(t, "hunter2", secret)
				return nil
			})
			require.NoError(t, err)
		}
	})

	t.Run("ResolveCredentialFromFile", func(t *testing.T) {
		path := writeSecretFile(t, "from-file\n")
		cred, err := ResolveCredential(path, "")
		require.NoError(t, err)
		require.False(t, cred.IsZero())

		err = cred.Use(func(secret string) error {
			assert.Equal(t, "from-file", secret)
			return nil
		})
		require.NoError(t, err)
	})
}
