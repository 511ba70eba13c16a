package utils

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Level is the minimum severity a Logger will emit.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string onto a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides leveled logging throughout the application.
type Logger struct {
	min   Level
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger
}

// NewLogger creates a Logger writing to stdout/stderr that drops messages
// below the given level.
func NewLogger(min Level) *Logger {
	flags := 0
	return &Logger{
		min:   min,
		info:  log.New(os.Stdout, "", flags),
		warn:  log.New(os.Stdout, "", flags),
		err:   log.New(os.Stderr, "", flags),
		debug: log.New(os.Stdout, "", flags),
	}
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	if l.min > LevelInfo {
		return
	}
	l.info.Printf(fmt.Sprintf("[%s] \033[32mINFO\033[0m  %s\n", l.timestamp(), format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	if l.min > LevelWarn {
		return
	}
	l.warn.Printf(fmt.Sprintf("[%s] \033[33mWARN\033[0m  %s\n", l.timestamp(), format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(fmt.Sprintf("[%s] \033[31mERROR\033[0m %s\n", l.timestamp(), format), args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.min > LevelDebug {
		return
	}
	l.debug.Printf(fmt.Sprintf("[%s] \033[36mDEBUG\033[0m %s\n", l.timestamp(), format), args...)
}
