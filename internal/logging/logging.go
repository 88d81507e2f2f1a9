package logging

import (
	"go.uber.org/zap"
)

// Init builds the process logger and installs it as the zap global, so the
// rest of the code can use zap.L() directly.
func Init(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	return logger
}
