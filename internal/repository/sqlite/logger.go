package sqlite

import (
	"log"
	"strings"
	"sync/atomic"
)

const (
	levelSilent int32 = iota
	levelError
	levelInfo
	levelDebug
)

var logLevel atomic.Int32

func init() {
	logLevel.Store(levelInfo)
}

// SetLogLevel sets the store's log verbosity: silent, error, info or debug.
// Unknown values fall back to info.
func SetLogLevel(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		logLevel.Store(levelSilent)
	case "error":
		logLevel.Store(levelError)
	case "debug":
		logLevel.Store(levelDebug)
	default:
		logLevel.Store(levelInfo)
	}
}

func logDebugf(format string, v ...interface{}) {
	if logLevel.Load() < levelDebug {
		return
	}
	log.Printf("[store] "+format, v...)
}

func logInfof(format string, v ...interface{}) {
	if logLevel.Load() < levelInfo {
		return
	}
	log.Printf("[store] "+format, v...)
}

func logErrorf(format string, v ...interface{}) {
	if logLevel.Load() < levelError {
		return
	}
	log.Printf("[store][ERROR] "+format, v...)
}
