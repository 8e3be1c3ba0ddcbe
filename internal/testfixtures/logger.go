package testfixtures

import (
	"fmt"
	"strings"
	"sync"
)

// Logger запоминает сообщения, чтобы тесты могли проверить предупреждения
type Logger struct {
	mu    sync.Mutex
	lines []string
}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Debug(format string, v ...interface{}) { l.add("DEBUG", format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.add("INFO", format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.add("WARN", format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.add("ERROR", format, v...) }

// Lines возвращает копию записанных строк
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Contains returns true if any recorded line of the level contains substr
func (l *Logger) Contains(level, substr string) bool {
	for _, line := range l.Lines() {
		if strings.HasPrefix(line, "["+level+"]") && strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func (l *Logger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, v...)))
}
