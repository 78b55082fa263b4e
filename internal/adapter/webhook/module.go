package webhook

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/refmart/internal/config"
	"github.com/polkiloo/refmart/internal/notify"
)

// Module provides the Notifier implementation: webhook delivery when an
// endpoint is configured, application log otherwise.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (notify.Notifier, error) {
	if p.Config.WebhookURL == "" {
		return notify.NewLogNotifier(p.Logger), nil
	}
	return NewClient(p.Config.WebhookURL, p.Logger)
}
