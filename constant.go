// FILE: dobrawek/drlogger/constant.go
package drlogger

// Log level constants, ordered by severity
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// File naming and line layout
const (
	dateLayout       = "20060102"
	timeLayout       = "15:04:05.000"
	logExtension     = ".log"
	diagnosticPrefix = "drlogger: "
)

// Retention defaults
const (
	DefaultMaxFileCount   = 30
	DefaultMaxFileAgeDays = 90
)

// DailyFileListenerName is the name reported by daily file listeners and used as the tag of their own records
const DailyFileListenerName = "DailyFileListener"
