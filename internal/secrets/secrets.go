// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files and
// from a dotenv file. In the directory, the filename is the key name and
// the trimmed file contents are the value.
//
// Known keys: serpapi-api-key, huggingface-api-key, anthropic-api-key, gemini-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Key names understood by the CLI. Each maps to an environment variable
// used as a fallback (e.g. serpapi-api-key <-> SERPAPI_API_KEY).
const (
	SerpAPIKey     = "serpapi-api-key"
	HuggingFaceKey = "huggingface-api-key"
	AnthropicKey   = "anthropic-api-key"
	GeminiKey      = "gemini-api-key"
)

// Set is a loaded collection of secrets keyed by file-style name.
type Set map[string]string

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty set.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Set)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// MergeDotenv reads a dotenv file and adds its variables to s under their
// key names (SERPAPI_API_KEY becomes serpapi-api-key). Entries already in s
// win. A missing file is not an error.
func (s Set) MergeDotenv(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for k, v := range vars {
		name := KeyName(k)
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := s[name]; !ok {
			s[name] = v
		}
	}
	return nil
}

// Get returns the secret for key, falling back to the matching environment
// variable (SERPAPI_API_KEY for serpapi-api-key).
func (s Set) Get(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return strings.TrimSpace(os.Getenv(EnvName(key)))
}

// EnvName converts a key name to its environment variable form.
func EnvName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// KeyName converts an environment variable name to its key form.
func KeyName(env string) string {
	return strings.ToLower(strings.ReplaceAll(env, "_", "-"))
}
