package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadEnvFile seeds the process environment from a local key=value file.
//
// Blank lines, lines starting with '#' and lines without '=' are ignored.
// Keys and values are trimmed. The first occurrence of a key in the file
// wins, and a variable already present in the environment is never
// overridden. A missing file is not an error.
//
// It returns the keys that were actually exported, in file order.
func LoadEnvFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer file.Close()

	var exported []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}

		// Earlier lines and the real environment both take precedence.
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return exported, fmt.Errorf("failed to set %s: %w", key, err)
		}
		exported = append(exported, key)
	}

	if err := scanner.Err(); err != nil {
		return exported, fmt.Errorf("failed to read env file: %w", err)
	}
	return exported, nil
}
