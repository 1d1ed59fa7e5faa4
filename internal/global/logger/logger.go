package logger

import "gitlab.com/codejudge.net/internal/adapter/logging"

var Logger = logging.NewZapLogger()

// SetDebug rebuilds the process logger with debug output enabled or not.
func SetDebug(debug bool) {
	Logger = logging.NewZapLogger(debug)
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
