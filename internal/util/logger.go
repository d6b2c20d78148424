package util

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger builds the app-wide sugared logger, JSON in production and
// human-readable everywhere else.
func NewLogger(env string) *zap.SugaredLogger {
	var logger *zap.Logger

	if strings.EqualFold(env, "production") {
		logger = zap.Must(zap.NewProduction())
	} else {
		logger = zap.Must(zap.NewDevelopment())
	}

	return logger.Named(strings.ToLower(GetAppName())).Sugar()
}
