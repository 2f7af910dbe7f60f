package app

import (
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logLineLimit = 300

// logSink keeps the newest log lines for the log pane.
type logSink struct {
	mu      sync.Mutex
	lines   []string
	limit   int
	onWrite func()
}

func newLogSink(limit int) *logSink {
	return &logSink{limit: limit}
}

func (l *logSink) setOnWrite(fn func()) {
	l.mu.Lock()
	l.onWrite = fn
	l.mu.Unlock()
}

func (l *logSink) Write(p []byte) (int, error) {
	l.mu.Lock()
	text := strings.ReplaceAll(string(p), "\r\n", "\n")
	for _, part := range strings.Split(text, "\n") {
		if part == "" {
			continue
		}
		l.lines = append(l.lines, part)
	}
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	notify := l.onWrite
	l.mu.Unlock()
	if notify != nil {
		notify()
	}
	return len(p), nil
}

func (l *logSink) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

// setLogLevel switches level to the named level; unknown names mean warn.
func setLogLevel(level zap.AtomicLevel, name string) {
	lvl := zapcore.WarnLevel
	if parsed, err := zapcore.ParseLevel(name); err == nil {
		lvl = parsed
	}
	level.SetLevel(lvl)
}

func newLogger(w io.Writer, level zap.AtomicLevel) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
