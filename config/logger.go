package config

import (
	"os"

	"go.uber.org/zap"
)

// Log is the shared sugared logger. It defaults to a no-op so packages can
// log during tests without initialization.
var Log = zap.NewNop().Sugar()

// InitLogger builds the process logger: console encoder in development,
// JSON otherwise.
func InitLogger() error {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = logger.Sugar()
	return nil
}
