package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu    sync.Mutex
	std   = log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
	debug bool
)

// Init routes log output to stdout and a size-rotated file under logDir.
func Init(logDir string, enableDebug bool) {
	mu.Lock()
	defer mu.Unlock()

	debug = enableDebug

	if logDir == "" {
		return
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Printf("[ERROR] failed to create log directory %s: %v", logDir, err)
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   logDir + "/lifeline.log",
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	w := io.MultiWriter(os.Stdout, rotated)
	std = log.New(w, "", log.LstdFlags|log.Lmicroseconds)
	log.SetOutput(w)
}

func output(level, format string, v ...interface{}) {
	mu.Lock()
	l := std
	mu.Unlock()
	l.Output(3, fmt.Sprintf("["+level+"] "+format, v...))
}

func Info(format string, v ...interface{}) {
	output("INFO", format, v...)
}

func Warn(format string, v ...interface{}) {
	output("WARN", format, v...)
}

func Error(format string, v ...interface{}) {
	output("ERROR", format, v...)
}

func Debug(format string, v ...interface{}) {
	if debug {
		output("DEBUG", format, v...)
	}
}
