// internal/jobs/logger.go
package jobs

import (
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// cronLogger routes gocron's key/value logging into logrus.
type cronLogger struct {
	logger logrus.FieldLogger
}

var _ gocron.Logger = (*cronLogger)(nil)

func newCronLogger(logger logrus.FieldLogger) *cronLogger {
	return &cronLogger{logger: logger.WithField("component", "scheduler")}
}

func (l *cronLogger) Debug(msg string, args ...any) {
	l.logger.WithFields(toFields(args)).Debug(msg)
}

func (l *cronLogger) Info(msg string, args ...any) {
	l.logger.WithFields(toFields(args)).Info(msg)
}

func (l *cronLogger) Warn(msg string, args ...any) {
	l.logger.WithFields(toFields(args)).Warn(msg)
}

func (l *cronLogger) Error(msg string, args ...any) {
	l.logger.WithFields(toFields(args)).Error(msg)
}

func toFields(args []any) logrus.Fields {
	fields := make(logrus.Fields, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 == len(args) {
			fields["arg"] = args[i]
			break
		}
		fields[key] = args[i+1]
	}
	return fields
}
