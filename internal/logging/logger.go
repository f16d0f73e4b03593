package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	// Stdout receives mirrored log lines; defaults to os.Stderr so command
	// output on stdout stays parseable.
	Stdout io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds the process logger. The returned closer releases the log
// file and must be called on shutdown.
func Setup(params LoggerSetupParams) (*logrus.Logger, io.Closer) {
	logger := logrus.New()
	if params.LogFormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	logger.SetLevel(GetLevel(params.LogLevel))

	stdout := params.Stdout
	if stdout == nil {
		stdout = os.Stderr
	}

	if params.LogFileName == "" {
		if params.LogToStdout {
			logger.SetOutput(stdout)
		} else {
			logger.SetOutput(io.Discard)
		}
		return logger, nopCloser{}
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}
	if err := os.MkdirAll(filepath.Dir(params.LogFileName), 0755); err != nil {
		logger.SetOutput(stdout)
		logger.Errorf("creating log directory: %s", err)
		return logger, nopCloser{}
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		LocalTime:  false,
		Compress:   true,
	}

	if params.LogToStdout {
		logger.SetOutput(io.MultiWriter(stdout, lumberJackLogger))
	} else {
		logger.SetOutput(lumberJackLogger)
	}
	return logger, lumberJackLogger
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
