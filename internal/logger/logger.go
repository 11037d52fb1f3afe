package logger

import (
	"os"

	"github.com/rs/zerolog"
)

const (
	DefaultLogLevel = "info"

	// LogLevelEnvVar overrides the default level when --verbose is not set.
	LogLevelEnvVar = "SITEKIT_LOG_LEVEL"
)

// New creates a new logger instance
func New(opts ...Option) *zerolog.Logger {
	config := &Config{
		output:       os.Stderr,
		level:        zerolog.InfoLevel,
		excludeParts: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName},
		isDev:        true,
	}

	for _, opt := range opts {
		opt.apply(config)
	}

	logger := zerolog.New(config.output).
		Level(config.level).
		With().
		Logger()

	if config.isDev {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:          config.output,
			PartsExclude: config.excludeParts,
		})
	}

	return &logger
}

// NewConsoleLogger is the logger every command starts with.
func NewConsoleLogger() *zerolog.Logger {
	level := DefaultLogLevel
	if v, ok := os.LookupEnv(LogLevelEnvVar); ok && v != "" {
		level = v
	}

	return New(
		WithLevel(level),
		WithOutput(os.Stderr),
		WithConsoleWriter(true),
	)
}
