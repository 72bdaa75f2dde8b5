package bot

import (
	"fmt"
	"os"
)

// Config holds the bot configuration read from the environment.
type Config struct {
	// Telegram bot token
	Token string
	// Path to the conjugation reference file (CSV or XLSX)
	DataFile string
	// Directory for per-chat progress files
	ProgressDir string
}

// ConfigFromEnv builds the configuration from environment variables.
func ConfigFromEnv() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	dataFile := os.Getenv("CONJUGATION_FILE")
	if dataFile == "" {
		dataFile = "conjugazioni.csv"
	}

	progressDir := os.Getenv("PROGRESS_DIR")
	if progressDir == "" {
		progressDir = "progress"
	}

	return &Config{
		Token:       token,
		DataFile:    dataFile,
		ProgressDir: progressDir,
	}, nil
}
