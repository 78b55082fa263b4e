package notify

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module provides the audit log sink via fx. The Notifier implementation is
// chosen by the webhook adapter module.
var Module = fx.Provide(
	func(logger *slog.Logger) AuditLog { return NewSlogAudit(logger) },
)
