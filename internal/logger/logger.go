// Package logger builds the portal's zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Deployment environments understood by New.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const serviceName = "community-event-portal"

// New returns a JSON logger at info level for EnvProduction and a coloured
// console logger at debug level for anything else. Every entry carries the
// service name and environment.
func New(environment string) (*zap.Logger, error) {
	var cfg zap.Config
	if environment == EnvProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.InitialFields = map[string]interface{}{
		"service":     serviceName,
		"environment": environment,
	}

	return cfg.Build(zap.AddCaller())
}
