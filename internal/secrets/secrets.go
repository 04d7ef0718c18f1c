// Package secrets resolves database credentials from environment variables
// and mounted secret files, and holds them in locked memory until the
// connection is established.
//
// Security design:
//   - Never logs secret values
//   - Validates secret file permissions
//   - Plaintext lives in a memguard enclave; it is decrypted only inside
//     Credential.Use and wiped when the callback returns
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/awnumar/memguard"
)

const (
	// maxSecretFileSize limits secret file reads. Passwords and tokens are
	// small; anything larger is a misconfigured path.
	maxSecretFileSize = 64 * 1024 // 64 KB
)

// ExpandString resolves a string that may contain environment variable
// references. Supports ${VAR} and ${VAR:-default} syntax.
func ExpandString(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	var missingVars []string

	expanded := os.Expand(s, func(key string) string {
		varName := key
		defaultValue := ""
		fallbackProvided := false

		if idx := strings.Index(key, ":-"); idx != -1 {
			varName = key[:idx]
			defaultValue = key[idx+2:]
			fallbackProvided = true
		}

		value := os.Getenv(varName)
		if value == "" {
			if fallbackProvided {
				return defaultValue
			}
			missingVars = append(missingVars, varName)
			return ""
		}
		return value
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variable(s): %s", strings.Join(missingVars, ", "))
	}

	return expanded, nil
}

// ReadFile reads a secret from a file path, typically a Docker secret under
// /run/secrets or a Kubernetes mounted secret. Trailing newlines are trimmed.
func ReadFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("secret file path is empty")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("secret file not found: %s", cleanPath)
		}
		return "", fmt.Errorf("failed to stat secret file %s: %w", cleanPath, err)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("secret path is not a regular file: %s", cleanPath)
	}

	if info.Size() > maxSecretFileSize {
		return "", fmt.Errorf("secret file too large (max %d bytes): %s", maxSecretFileSize, cleanPath)
	}

	// Owner-only permissions expected (0o400 or 0o600).
	perm := info.Mode().Perm()
	if perm&0o077 != 0 {
		fmt.Fprintf(os.Stderr, "WARNING: secret file has group/other permissions (perms: %04o): %s\n", perm, cleanPath)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", cleanPath, err)
	}

	secret := strings.TrimRight(string(data), "\r\n")
	if secret == "" {
		return "", fmt.Errorf("secret file is empty: %s", cleanPath)
	}

	return secret, nil
}

// Resolve determines the secret value from multiple possible sources.
// Precedence: filePath, then value with environment expansion, then the
// literal value. An empty result is not an error; callers decide whether a
// secret is required.
func Resolve(filePath, value string) (string, error) {
	if filePath != "" {
		secret, err := ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read secret from file: %w", err)
		}
		return secret, nil
	}

	if value != "" {
		return ExpandString(value)
	}

	return "", nil
}

// Credential holds a resolved secret in an encrypted memguard enclave. The
// zero value is an empty credential.
type Credential struct {
	enclave *memguard.Enclave
}

// NewCredential seals a plaintext secret. The caller should not retain the
// plaintext after this returns.
func NewCredential(plaintext string) Credential {
	if plaintext == "" {
		return Credential{}
	}
	return Credential{enclave: memguard.NewEnclave([]byte(plaintext))}
}

// ResolveCredential resolves a secret per Resolve and seals it.
func ResolveCredential(filePath, value string) (Credential, error) {
	plaintext, err := Resolve(filePath, value)
	if err != nil {
		return Credential{}, err
	}
	return NewCredential(plaintext), nil
}

// IsZero reports whether the credential holds no secret.
func (c Credential) IsZero() bool {
	return c.enclave == nil
}

// Use decrypts the secret for the duration of fn and wipes the buffer when
// fn returns. The string passed to fn must not be retained.
func (c Credential) Use(fn func(secret string) error) error {
	if c.enclave == nil {
		return fn("")
	}
	buf, err := c.enclave.Open()
	if err != nil {
		return fmt.Errorf("failed to open credential enclave: %w", err)
	}
	defer buf.Destroy()
	return fn(buf.String())
}
