package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env/.env.local from the project root into the process
// environment. Existing variables are never overwritten; a missing file is
// not an error.
func loadEnvFiles(root string) {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
	}
}
