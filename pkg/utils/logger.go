package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes pipeline activity to a rotating workspace log and echoes
// process steps to the console.
type Logger struct {
	logger        *log.Logger
	jsonMode      bool
	correlationID string
	echoToConsole bool
}

var (
	globalLogger *Logger
	once         sync.Once
)

// GetLogger returns the singleton logger, initializing the rotating log file
// on first use. Console echo is enabled only when stdout is a terminal.
func GetLogger() *Logger {
	once.Do(func() {
		logFile := &lumberjack.Logger{
			Filename:   ".webwright/workspace.log",
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		globalLogger = &Logger{
			logger:        log.New(logFile, "", log.LstdFlags),
			echoToConsole: term.IsTerminal(int(os.Stdout.Fd())),
			jsonMode:      os.Getenv("WEBWRIGHT_JSON_LOGS") == "1",
			correlationID: os.Getenv("WEBWRIGHT_CORRELATION_ID"),
		}
	})
	return globalLogger
}

// Close closes the logger resources.
func (w *Logger) Close() error {
	if logFile, ok := w.logger.Writer().(*lumberjack.Logger); ok {
		return logFile.Close()
	}
	return nil
}

// LogProcessStep logs the current pipeline step and echoes it to the console.
func (w *Logger) LogProcessStep(step string) {
	w.logger.Printf("Process Step: %s", step)
	if w.echoToConsole {
		color.New(color.FgCyan).Fprintln(os.Stdout, step)
	}
}

// LogRepairOutcome logs a fixer outcome. These messages go only to the log file.
func (w *Logger) LogRepairOutcome(kind, filePath, detail string) {
	w.logger.Printf("Repair: kind=%s file=%s detail=%s", kind, filePath, detail)
}

// Log logs a general message only to the log file.
func (w *Logger) Log(message string) {
	if w.jsonMode {
		_ = json.NewEncoder(w.logger.Writer()).Encode(map[string]any{"level": "info", "msg": message, "cid": w.correlationID})
		return
	}
	w.logger.Print(message)
}

// Logf logs a formatted general message only to the log file.
func (w *Logger) Logf(format string, v ...interface{}) {
	if w.jsonMode {
		w.Log(fmt.Sprintf(format, v...))
		return
	}
	w.logger.Printf(format, v...)
}

func (w *Logger) LogError(err error) {
	if w.jsonMode {
		_ = json.NewEncoder(w.logger.Writer()).Encode(map[string]any{"level": "error", "error": err.Error(), "cid": w.correlationID})
		return
	}
	w.logger.Printf("Error: %s", err)
	if w.echoToConsole {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
	}
}
