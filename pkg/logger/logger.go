package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger builds the process logger: colored text and a debug default
// level in development, JSON and an info default in production. A non-empty
// logLevel (normally from configuration) overrides the default; an
// unparseable one falls back to info.
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(resolveLevel(logLevel, isDevelopment))

	if isDevelopment {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	Logger = log
	return log
}

func resolveLevel(raw string, isDevelopment bool) logrus.Level {
	if raw == "" {
		if isDevelopment {
			return logrus.DebugLevel
		}
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger("info", false)
	}
	return Logger
}

// WithService creates a logger with service context
func WithService(serviceName string) *logrus.Entry {
	return GetLogger().WithField("service", serviceName)
}

// WithComponent creates a logger with component context
func WithComponent(component string) *logrus.Entry {
	return GetLogger().WithField("component", component)
}

// WithPlayerContext creates a logger with player context
func WithPlayerContext(playerKey, team string) *logrus.Entry {
	fields := logrus.Fields{}
	if playerKey != "" {
		fields["player_key"] = playerKey
	}
	if team != "" {
		fields["team"] = team
	}
	return GetLogger().WithFields(fields)
}

// WithSeasonContext creates a logger with season and week context
func WithSeasonContext(season, week int) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"season": season,
		"week":   week,
	})
}
