package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	SUCCESS
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case SUCCESS:
		return "SUCCESS"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ColoredLogger 按级别着色输出；ERROR 默认写到 stderr，其余写到 stdout
type ColoredLogger struct {
	verbose bool
	mu      sync.RWMutex
	out     io.Writer
	errOut  io.Writer
	colors  map[LogLevel]*color.Color
}

var globalLogger *ColoredLogger

func init() {
	globalLogger = &ColoredLogger{
		out:    os.Stdout,
		errOut: os.Stderr,
		colors: map[LogLevel]*color.Color{
			DEBUG:   color.New(color.FgHiBlack),
			INFO:    color.New(color.Reset),
			SUCCESS: color.New(color.FgGreen),
			WARN:    color.New(color.FgYellow),
			ERROR:   color.New(color.FgRed),
		},
	}
}

func SetVerbose(verbose bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.verbose = verbose
}

func IsVerbose() bool {
	globalLogger.mu.RLock()
	defer globalLogger.mu.RUnlock()
	return globalLogger.verbose
}

// SetOutput 替换输出目标，测试中用于捕获日志
func SetOutput(out, errOut io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.out = out
	globalLogger.errOut = errOut
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	cl.mu.RLock()
	if level == DEBUG && !cl.verbose {
		cl.mu.RUnlock()
		return
	}
	w := cl.out
	if level == ERROR {
		w = cl.errOut
	}
	c := cl.colors[level]
	cl.mu.RUnlock()

	message := fmt.Sprintf(format, args...)
	if level == DEBUG {
		message = "[debug] " + message
	}
	c.Fprintln(w, message)
}

func Debug(format string, args ...interface{}) {
	globalLogger.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.log(INFO, format, args...)
}

func Success(format string, args ...interface{}) {
	globalLogger.log(SUCCESS, format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.log(ERROR, format, args...)
}
