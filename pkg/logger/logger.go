package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Уровни логирования в порядке возрастания важности
const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// Logger пишет логи одновременно в файл и в stdout
type Logger struct {
	std   *log.Logger
	file  *os.File
	level int
}

// New создает логгер с записью в файл filePath и фильтрацией по уровню.
// Допустимые уровни: debug, info, warn, error (по умолчанию info).
func New(filePath, level string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("logger: create log dir: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open log file: %w", err)
	}

	return &Logger{
		std:   log.New(io.MultiWriter(os.Stdout, file), "", log.LstdFlags|log.Lmicroseconds),
		file:  file,
		level: parseLevel(level),
	}, nil
}

func parseLevel(level string) int {
	switch strings.ToLower(level) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	return l.file.Close()
}

// Debug пишет отладочное сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	l.print(levelDebug, "DEBUG", format, v...)
}

// Info пишет информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.print(levelInfo, "INFO", format, v...)
}

// Warn пишет предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.print(levelWarn, "WARN", format, v...)
}

// Error пишет сообщение об ошибке
func (l *Logger) Error(format string, v ...interface{}) {
	l.print(levelError, "ERROR", format, v...)
}

// Fatal пишет сообщение об ошибке и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.print(levelError, "FATAL", format, v...)
	l.file.Close()
	os.Exit(1)
}

func (l *Logger) print(level int, tag, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.std.Printf("[%s] %s", tag, fmt.Sprintf(format, v...))
}
