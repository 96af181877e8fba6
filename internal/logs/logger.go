package logs

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Level  string // trace|debug|info|warning|error|fatal
	Format string // text|json
}

// New builds the application logger. Callers hold the reference; there is
// no package-level logger.
func New(opts Options) *logrus.Logger {
	l := logrus.New()

	switch opts.Level {
	case "trace":
		l.SetLevel(logrus.TraceLevel)
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "warning", "warn":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	case "fatal":
		l.SetLevel(logrus.FatalLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	if opts.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	l.SetOutput(os.Stdout)
	return l
}
