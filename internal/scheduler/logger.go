package scheduler

import (
	"fmt"
	"os"

	"salesdesk_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// asynqLogger routes asynq's internal logging through the app logger.
type asynqLogger struct {
	log *logger.Logger
}

func newAsynqLogger(log *logger.Logger) asynq.Logger {
	if log == nil {
		log = logger.Discard()
	}
	return asynqLogger{log: &logger.Logger{Logger: log.With("component", "asynq")}}
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error(fmt.Sprint(args...)) }

func (l asynqLogger) Fatal(args ...interface{}) {
	l.log.Error(fmt.Sprint(args...))
	os.Exit(1)
}
