package logger

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// DiagLogger records page-level diagnostics (fetch failures, backend
// errors). Lines go to an append-only file and stay in memory so the health
// endpoint can return a recent tail.
type DiagLogger struct {
	mu       sync.RWMutex // read-write lock
	logs     []string     // log list in memory
	file     *os.File     // opened file handle
	filePath string
}

func NewDiagLogger(filePath string) (*DiagLogger, error) {
	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &DiagLogger{
		logs:     make([]string, 0),
		file:     f,
		filePath: filePath,
	}, nil
}

func (l *DiagLogger) Info(format string, v ...any) {
	l.log("INFO", format, v...)
}

func (l *DiagLogger) Error(format string, v ...any) {
	l.log("ERROR", format, v...)
}

func (l *DiagLogger) log(level, format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logLine := fmt.Sprintf("%s [%s] %s", timestamp, level, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, logLine)
	if l.file != nil {
		l.file.WriteString(logLine + "\n")
	}
}

// GetLogs returns the last tail lines and the total line count
func (l *DiagLogger) GetLogs(tail int) ([]string, int) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := len(l.logs)
	if tail <= 0 || tail > total {
		return l.logs, total
	}

	return l.logs[total-tail:], total
}

func (l *DiagLogger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}
