package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the sugared logger shared by every package. The
// level can be raised with CONTACTBOOK_LOG_LEVEL (e.g. "warn").
func NewLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	if level := os.Getenv("CONTACTBOOK_LOG_LEVEL"); level != "" {
		if err := config.Level.UnmarshalText([]byte(level)); err != nil {
			log.Panic(err)
		}
	}

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		log.Panic(err)
	}

	// flushes buffer, if any
	defer logger.Sync()

	return logger.Sugar()
}
