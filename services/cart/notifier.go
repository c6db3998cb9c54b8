package cart

import (
	"context"

	"github.com/MarcGrol/rocketshoes/lib/mylog"
)

//go:generate mockgen -source=notifier.go -package cart -destination notifier_mock.go Notifier
type Notifier interface {
	Notify(c context.Context, cartUID string, notice Notice)
}

type logNotifier struct {
	logger mylog.Logger
}

func NewLogNotifier(logger mylog.Logger) Notifier {
	return &logNotifier{
		logger: logger,
	}
}

func (n *logNotifier) Notify(c context.Context, cartUID string, notice Notice) {
	n.logger.Log(c, cartUID, mylog.SeverityWarn, "Notice for cart %s: %s", cartUID, notice)
}
