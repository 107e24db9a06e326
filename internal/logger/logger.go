package logger

import "go.uber.org/zap"

// New builds the service logger. Anything other than "production" gets the
// human-readable development encoder.
func New(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
