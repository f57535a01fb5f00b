package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppConfig      *AppConfig
	BrowserConfig  *BrowserConfig
	SnapshotConfig *SnapshotConfig
}

type AppConfig struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
	StartURL string `envconfig:"START_URL" default:""`
}

type BrowserConfig struct {
	Headless    bool   `envconfig:"BROWSER_HEADLESS" default:"true"`
	SlowMo      int    `envconfig:"BROWSER_SLOW_MO" default:"0"`
	Timeout     int    `envconfig:"BROWSER_TIMEOUT" default:"30000"`
	UserDataDir string `envconfig:"BROWSER_USER_DATA_DIR" default:""`
}

type SnapshotConfig struct {
	MaxDepth    int    `envconfig:"SNAPSHOT_MAX_DEPTH" default:"0"`
	Compact     bool   `envconfig:"SNAPSHOT_COMPACT" default:"false"`
	CursorLimit int    `envconfig:"SNAPSHOT_CURSOR_LIMIT" default:"100"`
	ShellsFile  string `envconfig:"SNAPSHOT_SHELLS_FILE" default:""`
}

func GetConfig() (*Config, error) {
	_ = godotenv.Load()

	var conf Config

	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("read config from env vars: %w", err)
	}

	return &conf, nil
}
