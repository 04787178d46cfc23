package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance for the whole application.
// Usable before Init so that tests get a working logger too.
var Log = logrus.New()

// Init configures the global logger.
// Must be called once at application startup, in main.go.
func Init() {
	// Log level comes from the environment. Default is "info",
	// switch to "debug" when chasing desyncs.
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" for production log collection, "text" for development.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Configure applies config-file settings. Environment variables win, so
// LOG_LEVEL=debug still works against any config.
func Configure(level, format string) {
	if _, ok := os.LookupEnv("LOG_LEVEL"); !ok && level != "" {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			Log.SetLevel(parsed)
		}
	}
	if _, ok := os.LookupEnv("LOG_FORMAT"); !ok && strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
}
