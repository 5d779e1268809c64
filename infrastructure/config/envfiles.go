package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads dotenv files without overriding variables that are
// already set. ENV_FILE, when present, replaces the default .env.local/.env pair.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return loadOptional(envFile)
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := loadOptional(name); err != nil {
			return err
		}
	}
	return nil
}

func loadOptional(name string) error {
	if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", name, err)
	}
	return nil
}
