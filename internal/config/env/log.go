package env

import (
	"os"
	"strings"

	"velvet_bite/internal/config"
)

const (
	logLevelEnvName       = "LOG_LEVEL"
	tracingEnabledEnvName = "TRACING_ENABLED"
	logPrettyEnvName      = "LOG_PRETTY"
)

type logConfig struct {
	level   string
	tracing bool
	pretty  bool
}

func NewLogConfig() config.LogConfig {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}
	return &logConfig{
		level:   strings.ToLower(level),
		tracing: strings.EqualFold(os.Getenv(tracingEnabledEnvName), "true"),
		pretty:  strings.EqualFold(os.Getenv(logPrettyEnvName), "true"),
	}
}

func (c *logConfig) Level() string {
	return c.level
}

func (c *logConfig) TracingEnabled() bool {
	return c.tracing
}

// Pretty - человекочитаемый вывод вместо JSON
func (c *logConfig) Pretty() bool {
	return c.pretty
}
