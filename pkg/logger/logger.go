package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
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

// ParseLevel парсит уровень логирования из строки конфига
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
}

// Logger простой файловый логгер с уровнями
// Пишет одновременно в файл и в stdout. Формат: дата, время, уровень, сообщение.
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// New создает логгер, пишущий в указанный файл
// Если path пустой, пишет только в stdout
func New(path string, levelStr string) (*Logger, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	var file *os.File
	writers := []io.Writer{os.Stdout}

	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("logger: failed to create log dir: %w", err)
			}
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to open log file: %w", err)
		}
		writers = append(writers, file)
	}

	return &Logger{
		level: level,
		out:   log.New(io.MultiWriter(writers...), "", log.LstdFlags),
		file:  file,
	}, nil
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
	l.printf(LevelDebug, "DEBUG", format, v...)
}

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, v ...interface{}) {
	l.printf(LevelInfo, "INFO", format, v...)
}

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, v ...interface{}) {
	l.printf(LevelWarn, "WARN", format, v...)
}

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, v ...interface{}) {
	l.printf(LevelError, "ERROR", format, v...)
}

// Fatal логирует сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.printf(LevelError, "FATAL", format, v...)
	os.Exit(1)
}

func (l *Logger) printf(level Level, tag string, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", tag, fmt.Sprintf(format, v...))
}
