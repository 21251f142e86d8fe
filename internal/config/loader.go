package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// loadEnv merges variables from an optional .env file with the process
// environment. Process environment wins.
func loadEnv(envFile string) (map[string]string, error) {
	merged := make(map[string]string)

	if envFile != "" {
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("env file not found: %s", envFile)
		}
		fileEnv, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("reading env file %s: %w", envFile, err)
		}
		for k, v := range fileEnv {
			merged[k] = v
		}
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, "KTAIL_") {
			continue
		}
		merged[k] = v
	}

	return merged, nil
}
