package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel парсит строковый уровень из конфигурации
// Неизвестные значения трактуются как info
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
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

// Logger простой уровневый логгер, пишущий одновременно в файл и stdout
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// New создает логгер. Если path пустой, пишет только в stdout
func New(path string, level string) (*Logger, error) {
	l := &Logger{level: ParseLevel(level)}

	writers := []io.Writer{os.Stdout}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to open log file %s: %w", path, err)
		}
		l.file = f
		writers = append(writers, f)
	}

	l.out = log.New(io.MultiWriter(writers...), "", log.LstdFlags|log.Lmicroseconds)
	return l, nil
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, "DEBUG", format, v...)
}

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, "INFO", format, v...)
}

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, "WARN", format, v...)
}

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, "ERROR", format, v...)
}

// Fatal логирует сообщение уровня ERROR и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(LevelError, "FATAL", format, v...)
	os.Exit(1)
}

func (l *Logger) log(level Level, tag string, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("["+tag+"] "+format, v...)
}
