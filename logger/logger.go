package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFilename = "recipebox.log"

var Logger = zerolog.New(io.Discard)
var HttpLogger = zerolog.New(io.Discard)
var logFilePath string

// ParseLevel accepts a zerolog level name ("debug", "warn") or the numeric
// scale used by older configs (6=trace ... 0=panic).
func ParseLevel(s string) zerolog.Level {
	s = strings.TrimSpace(s)

	if n, err := strconv.Atoi(s); err == nil {
		switch n {
		case 6:
			return zerolog.TraceLevel
		case 5:
			return zerolog.DebugLevel
		case 4:
			return zerolog.InfoLevel
		case 3:
			return zerolog.WarnLevel
		case 2:
			return zerolog.ErrorLevel
		case 1:
			return zerolog.FatalLevel
		case 0:
			return zerolog.PanicLevel
		default:
			return zerolog.InfoLevel
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Init configures console logging to stderr at the given level.
func Init(logLevel string) {
	InitWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}, logLevel)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, logLevel string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := ParseLevel(logLevel)

	Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	HttpLogger = Logger.With().Str("component", "http").Logger()

	if level <= zerolog.DebugLevel {
		Logger = Logger.With().Caller().Logger()
	}
}

// AddFileLogger tees the application log into a rotating file under dir.
func AddFileLogger(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	logFilePath = filepath.Join(dir, logFilename)
	fileLogger := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10,
		MaxAge:     3,
		MaxBackups: 3,
	}

	level := Logger.GetLevel()
	multi := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime},
		fileLogger,
	)

	Logger = zerolog.New(multi).Level(level).With().Timestamp().Logger()
	HttpLogger = zerolog.New(fileLogger).Level(level).With().Timestamp().Str("component", "http").Logger()

	return nil
}

func GetLogFilePath() string {
	return logFilePath
}
