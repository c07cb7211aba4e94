package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

var base = logrus.New()

func init() {
	base.Formatter = &logrus.TextFormatter{
		TimestampFormat: "Jan 02 15:04:05",
		FullTimestamp:   true,
	}
}

// Get returns the package logger, its level derived from PLUGINLOADER_LOGLEVEL.
func Get() Logger {
	switch strings.ToLower(os.Getenv("PLUGINLOADER_LOGLEVEL")) {
	case "trace":
		base.Level = logrus.TraceLevel
	case "debug":
		base.Level = logrus.DebugLevel
	case "warn":
		base.Level = logrus.WarnLevel
	case "error":
		base.Level = logrus.ErrorLevel
	default:
		base.Level = logrus.InfoLevel
	}
	return &entryLogger{logrus.NewEntry(base)}
}

type entryLogger struct {
	*logrus.Entry
}

func (l *entryLogger) WithField(key string, value interface{}) Logger {
	return &entryLogger{l.Entry.WithField(key, value)}
}

func (l *entryLogger) WithFields(fields Fields) Logger {
	return &entryLogger{l.Entry.WithFields(fields)}
}

func (l *entryLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return &entryLogger{l.Entry.WithError(err)}
}

var _ Logger = &entryLogger{}
