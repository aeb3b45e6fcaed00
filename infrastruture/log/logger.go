// Package log provides the colored, prefixed, leveled logger used across the service.
package log

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/beka-birhanu/vinom-qlearn/config"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
)

var _ i.Logger = &Logger{}

// Logger writes "[PREFIX] [LEVEL] message" lines. The prefix is printed in the given color.
type Logger struct {
	logger *log.Logger
}

// New creates a Logger writing to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if w == nil {
		return nil, errors.New("logger writer is required")
	}

	p := fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset)
	return &Logger{logger: log.New(w, p, log.LstdFlags)}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.logger.Printf("%s[WARNING]%s %s", config.LogWarningColor, config.LogColorReset, msg)
}

// Error logs a failed operation.
func (l *Logger) Error(msg string) {
	l.logger.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, msg)
}
