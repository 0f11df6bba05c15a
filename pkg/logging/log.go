package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFileName is the name of the log file inside the data directory
const LogFileName = "monswitch.log"

var (
	logOut   io.Writer
	logFile  *os.File
	echoOut  io.Writer
	logMutex sync.Mutex
)

// openDefault lazily opens the log file in the data directory.
// Must be called with logMutex held.
func openDefault() io.Writer {
	if logOut != nil {
		return logOut
	}
	dir, err := DataDir()
	if err == nil {
		err = os.MkdirAll(dir, 0700)
	}
	if err == nil {
		logFile, err = os.OpenFile(filepath.Join(dir, LogFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	}
	if err != nil {
		// Nowhere to write; keep running without a log file
		logOut = io.Discard
		return logOut
	}
	logOut = logFile
	return logOut
}

// DataDir returns the directory holding the settings database and log file.
// MONSWITCH_HOME overrides the default of ~/.monswitch.
func DataDir() (string, error) {
	if dir := os.Getenv("MONSWITCH_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".monswitch"), nil
}

// SetOutput redirects log lines to w instead of the log file
func SetOutput(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logOut = w
}

// SetEcho additionally copies every log line to w (nil disables).
// Headless commands echo to stdout; the TUI must not.
func SetEcho(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	echoOut = w
}

// Close flushes and closes the log file if one was opened
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		logOut = nil
	}
}

func log(level, msg string) {
	logMutex.Lock()
	defer logMutex.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%s [%s] %s\n", timestamp, level, msg)
	_, _ = io.WriteString(openDefault(), line)
	if logFile != nil {
		_ = logFile.Sync()
	}
	if echoOut != nil && level != "DEBUG" {
		_, _ = io.WriteString(echoOut, msg+"\n")
	}
}

func LogDebug(format string, args ...interface{}) {
	log("DEBUG", fmt.Sprintf(format, args...))
}

func LogInfo(format string, args ...interface{}) {
	log("INFO", fmt.Sprintf(format, args...))
}

func LogError(format string, args ...interface{}) {
	log("ERROR", fmt.Sprintf(format, args...))
}
