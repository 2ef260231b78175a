package runtime

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env files into the process environment when present.
// Variables already set in the environment win.
func LoadDotEnv(logger *slog.Logger, files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		if logger != nil {
			logger.Debug("no .env file loaded, using process environment", "err", err)
		}
		return
	}
	if logger != nil {
		logger.Info("loaded configuration from .env", "files", files)
	}
}
