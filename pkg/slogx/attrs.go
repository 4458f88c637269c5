package slogx

import (
	"fmt"
	"log/slog"
)

// Error returns a slog.Attr for the provided error under the conventional
// "error" key.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// ByteString returns a slog.Attr holding the byte slice rendered as a string.
// Useful for logging small payloads without an explicit conversion at every
// call site.
func ByteString(key string, value []byte) slog.Attr {
	return slog.String(key, string(value))
}

// Stringer returns a slog.Attr with the string representation of any
// fmt.Stringer value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// KeyLoggerName is the attribute key that identifies which component a log
// record came from.
const KeyLoggerName = "logger"

// LoggerName returns the component-name attribute under KeyLoggerName.
// Components tag their injected loggers with it so records from different
// schedulers and brokers can be told apart.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}
