// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogFormat string

const (
	LevelOpt  = "level"
	FormatOpt = "format"

	// FileOpt names a file receiving the log output instead of stderr. The
	// file is rotated once it reaches FileMaxSizeOpt megabytes.
	FileOpt           = "file"
	FileMaxSizeOpt    = "file-max-size"
	FileMaxBackupsOpt = "file-max-backups"

	defaultFileMaxSize = 100 // MBs

	// LogFormatText is a format for log messages in plain text
	LogFormatText LogFormat = "text"

	// LogFormatJSON is a format for log messages in JSON
	LogFormatJSON LogFormat = "json"

	// DefaultLogFormat is the string representation of the default logrus.Formatter
	// we want to use (possible values: text or json)
	DefaultLogFormat LogFormat = LogFormatText

	// DefaultLogLevel is the default log level we want to use for our logrus.Formatter
	DefaultLogLevel logrus.Level = logrus.InfoLevel
)

// DefaultLogger is the base logrus logger. It is different from the logrus
// default to avoid external dependencies from writing out unexpectedly
var DefaultLogger = InitializeDefaultLogger()

// InitializeDefaultLogger returns a logrus Logger with a custom text formatter.
func InitializeDefaultLogger() (logger *logrus.Logger) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(GetFormatter(DefaultLogFormat))
	logger.SetLevel(DefaultLogLevel)
	return
}

// LogOptions maps configuration key-value pairs related to logging.
type LogOptions map[string]string

// GetLogLevel returns the log level specified in the provided LogOptions. If
// it is not set in the options, it will return the default level.
func (o LogOptions) GetLogLevel() (level logrus.Level) {
	levelOpt, ok := o[LevelOpt]
	if !ok {
		return DefaultLogLevel
	}

	var err error
	if level, err = logrus.ParseLevel(levelOpt); err != nil {
		logrus.WithError(err).Warning("Ignoring user-configured log level")
		return DefaultLogLevel
	}

	return
}

// GetLogFormat returns the log format specified in the provided LogOptions. If
// it is not set in the options or is invalid, it will return the default format.
func (o LogOptions) GetLogFormat() LogFormat {
	formatOpt, ok := o[FormatOpt]
	if !ok {
		return DefaultLogFormat
	}

	formatOpt = strings.ToLower(formatOpt)
	re := LogFormat(formatOpt)
	if re == LogFormatText || re == LogFormatJSON {
		return re
	}

	logrus.WithField(FormatOpt, formatOpt).Warning("Ignoring user-configured log format")
	return DefaultLogFormat
}

// SetLogLevel updates the DefaultLogger with a new logrus.Level
func SetLogLevel(logLevel logrus.Level) {
	DefaultLogger.SetLevel(logLevel)
}

// SetDefaultLogLevel updates the DefaultLogger with the DefaultLogLevel
func SetDefaultLogLevel() {
	DefaultLogger.SetLevel(DefaultLogLevel)
}

// SetLogLevelToDebug updates the DefaultLogger with the logrus.DebugLevel
func SetLogLevelToDebug() {
	DefaultLogger.SetLevel(logrus.DebugLevel)
}

// SetLogFormat updates the DefaultLogger with a new LogFormat
func SetLogFormat(logFormat LogFormat) {
	DefaultLogger.SetFormatter(GetFormatter(logFormat))
}

// SetDefaultLogFormat updates the DefaultLogger with the DefaultLogFormat
func SetDefaultLogFormat() {
	DefaultLogger.SetFormatter(GetFormatter(DefaultLogFormat))
}

// SetupLogging sets up the DefaultLogger from the given options. The debug
// argument overrides any level found in logOpts.
func SetupLogging(logOpts LogOptions, debug bool) error {
	SetLogFormat(logOpts.GetLogFormat())

	if debug {
		SetLogLevelToDebug()
	} else {
		SetLogLevel(logOpts.GetLogLevel())
	}

	if lvl, ok := logOpts[LevelOpt]; ok && !debug {
		if _, err := logrus.ParseLevel(lvl); err != nil {
			return fmt.Errorf("invalid log level %q: %w", lvl, err)
		}
	}

	if fileName := logOpts[FileOpt]; fileName != "" {
		rotator, err := logOpts.fileRotation(fileName)
		if err != nil {
			return err
		}
		DefaultLogger.SetOutput(rotator)
	}
	return nil
}

// fileRotation returns a size based rotating writer for fileName. Backups
// are kept indefinitely unless FileMaxBackupsOpt is set.
func (o LogOptions) fileRotation(fileName string) (*lumberjack.Logger, error) {
	maxSize, err := o.intOpt(FileMaxSizeOpt, defaultFileMaxSize)
	if err != nil {
		return nil, err
	}
	maxBackups, err := o.intOpt(FileMaxBackupsOpt, 0)
	if err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
	}, nil
}

func (o LogOptions) intOpt(key string, def int) (int, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

// CanLogAt returns whether a log message at the given level would be
// logged by the given logger.
func CanLogAt(logger *logrus.Logger, level logrus.Level) bool {
	return logger.IsLevelEnabled(level)
}

// GetFormatter returns a configured logrus.Formatter with some specific values
// we want to have
func GetFormatter(format LogFormat) logrus.Formatter {
	switch format {
	case LogFormatText:
		return &logrus.TextFormatter{
			DisableTimestamp: true,
			DisableColors:    true,
		}
	case LogFormatJSON:
		return &logrus.JSONFormatter{
			DisableTimestamp: true,
		}
	}

	return nil
}
