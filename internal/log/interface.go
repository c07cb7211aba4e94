package log

// Logger is the logging surface the loader talks to. It is satisfied by
// *logrus.Entry through the adapter in log.go, kept as an interface so the
// loader package never imports logrus directly.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger

	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
