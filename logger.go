package replicapool

import "go.uber.org/zap"

type Logger interface {
	Printf(msg string, params ...interface{})
	Println(msg string)
	Fatalf(msg string, params ...interface{})
}

// DefaultLogger routes through the process-wide zap logger.
type DefaultLogger struct{}

func (l DefaultLogger) Printf(msg string, params ...interface{}) {
	zap.S().Infof(msg, params...)
}

func (l DefaultLogger) Println(msg string) {
	zap.S().Info(msg)
}

func (l DefaultLogger) Fatalf(msg string, params ...interface{}) {
	zap.S().Fatalf(msg, params...)
}
