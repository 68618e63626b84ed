package logger

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level      string
	Format     string
	OutputFile string
}

// NewConfig normalizes the values read by the config package.
func NewConfig(level, format, outputFile string) *LoggerConfig {
	if level == "" {
		level = "info"
	}
	if format == "" {
		format = "json"
	}
	if outputFile == "" {
		outputFile = "stdout"
	}
	return &LoggerConfig{
		Level:      strings.ToLower(level),
		Format:     strings.ToLower(format),
		OutputFile: outputFile,
	}
}

// ToZapLevel converts the string log level to zapcore.Level.
func (c *LoggerConfig) ToZapLevel() zapcore.Level {
	switch c.Level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
