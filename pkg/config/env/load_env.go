package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const PathVariable = "ENV_PATH"

// LoadDotEnv loads environment variables from a .env file. ENV_PATH, when set, replaces
// defaultPath and must point at a readable file. A missing default file is skipped.
// Variables already present in the environment are never overridden.
func LoadDotEnv(defaultPath string) error {
	envPath, explicit := os.LookupEnv(PathVariable)
	if !explicit || envPath == "" {
		envPath = defaultPath
		explicit = false
	}

	err := godotenv.Load(envPath)
	if err == nil {
		slog.Debug("Loaded .env", "path", envPath)
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Skipping .env ...", "path", envPath)
		return nil
	}

	slog.Error("Failed to load environment variables", "path", envPath, "error", err)
	return err
}
