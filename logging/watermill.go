package logging

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/sirupsen/logrus"
)

// WatermillAdapter implements watermill.LoggerAdapter on top of logrus so the
// router and pub/sub internals log through the same pipeline as everything
// else.
type WatermillAdapter struct {
	entry *logrus.Entry
}

func NewWatermill(entry *logrus.Entry) WatermillAdapter {
	return WatermillAdapter{entry: entry}
}

func (a WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.entry.WithError(err).WithFields(logrus.Fields(fields)).Error(msg)
}

func (a WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

func (a WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (a WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).Trace(msg)
}

func (a WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return WatermillAdapter{entry: a.entry.WithFields(logrus.Fields(fields))}
}
