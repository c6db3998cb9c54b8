package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	sugar *zap.SugaredLogger
}

func newStandardLogger(componentName string) Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}

	return standardLogger{
		sugar: logger.Sugar().Named(componentName),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	switch severity {
	case SeverityDebug:
		l.sugar.Debugw(msg, "aggregate", traceLabel)
	case SeverityWarn:
		l.sugar.Warnw(msg, "aggregate", traceLabel)
	case SeverityError:
		l.sugar.Errorw(msg, "aggregate", traceLabel)
	default:
		l.sugar.Infow(msg, "aggregate", traceLabel)
	}
}
