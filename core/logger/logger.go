package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) color() string {
	switch l {
	case DEBUG:
		return colorGray
	case INFO:
		return colorBlue
	case WARN:
		return colorYellow
	case ERROR:
		return colorRed
	case FATAL:
		return colorPurple
	default:
		return colorWhite
	}
}

type pipelineLogger struct {
	mu      sync.RWMutex
	verbose bool
	out     *log.Logger
	logfile *os.File
}

var global = &pipelineLogger{
	out: log.New(os.Stdout, "", 0),
}

func SetVerbose(verbose bool) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.verbose = verbose
}

func IsVerbose() bool {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.verbose
}

// SetOutput redirects all log output to w. Used by tests to capture output.
func SetOutput(w io.Writer) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.out = log.New(w, "", 0)
}

// OpenLogFile tees all log output into the given file in addition to stdout.
func OpenLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	global.mu.Lock()
	defer global.mu.Unlock()
	global.logfile = f
	global.out = log.New(io.MultiWriter(os.Stdout, f), "", 0)
	return nil
}

// CloseLogFile closes the logfile opened with OpenLogFile, if any.
func CloseLogFile() {
	global.mu.Lock()
	defer global.mu.Unlock()
	if global.logfile != nil {
		global.logfile.Close()
		global.logfile = nil
		global.out = log.New(os.Stdout, "", 0)
	}
}

func (pl *pipelineLogger) log(level LogLevel, format string, args ...interface{}) {
	pl.mu.RLock()
	if level == DEBUG && !pl.verbose {
		pl.mu.RUnlock()
		return
	}
	out := pl.out
	pl.mu.RUnlock()

	timestamp := time.Now().Format("06-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	out.Printf(
		"%s[%s]%s %s%-5s%s %s",
		colorGray, timestamp, colorReset,
		level.color(), level.String(), colorReset,
		message,
	)

	if level == FATAL {
		os.Exit(1)
	}
}

func Debug(format string, args ...interface{}) {
	global.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	global.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	global.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	global.log(ERROR, format, args...)
}

func Fatal(format string, args ...interface{}) {
	global.log(FATAL, format, args...)
}
