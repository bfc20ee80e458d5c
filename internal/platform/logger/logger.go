package logger

import "go.uber.org/zap"

// NewNamed creates a named zap logger appropriate for the environment:
// JSON production config everywhere except development, which gets the
// human-readable console encoder.
func NewNamed(env, name string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if env == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
