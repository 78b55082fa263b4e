// Package notify defines the outbound collaborator boundaries of the
// settlement engine: change notifications and audit records. Delivery and
// persistence belong to the collaborators; the engine only emits.
package notify

import (
	"context"
	"log/slog"

	"github.com/polkiloo/refmart/internal/domain/model"
)

// Notifier receives change notifications after successful state transitions.
// Implementations must not block settlement; failures are theirs to handle.
type Notifier interface {
	OrderCreated(ctx context.Context, order *model.Order)
	OrderVerified(ctx context.Context, order *model.Order)
	EntriesPosted(ctx context.Context, orderID int64, entries []model.LedgerEntry)
	PayoutResolved(ctx context.Context, request *model.PayoutRequest)
}

// AuditLog records admin-triggered transitions. One call per transition.
type AuditLog interface {
	Record(ctx context.Context, actorID int64, action, target string, details map[string]any)
}

// LogNotifier writes notifications to the application log. It is the default
// Notifier when no webhook endpoint is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderCreated(ctx context.Context, order *model.Order) {
	n.logger.InfoContext(ctx, "order created",
		slog.Int64("order_id", order.ID),
		slog.String("status", string(order.Status)),
	)
}

func (n *LogNotifier) OrderVerified(ctx context.Context, order *model.Order) {
	n.logger.InfoContext(ctx, "order verified", slog.Int64("order_id", order.ID))
}

func (n *LogNotifier) EntriesPosted(ctx context.Context, orderID int64, entries []model.LedgerEntry) {
	n.logger.InfoContext(ctx, "ledger entries posted",
		slog.Int64("order_id", orderID),
		slog.Int("count", len(entries)),
	)
}

func (n *LogNotifier) PayoutResolved(ctx context.Context, request *model.PayoutRequest) {
	n.logger.InfoContext(ctx, "payout resolved",
		slog.Int64("request_id", request.ID),
		slog.String("status", string(request.Status)),
	)
}

// SlogAudit writes audit records to the application log. Durable audit
// persistence is an external collaborator concern.
type SlogAudit struct {
	logger *slog.Logger
}

// NewSlogAudit constructs SlogAudit.
func NewSlogAudit(logger *slog.Logger) *SlogAudit {
	return &SlogAudit{logger: logger}
}

func (a *SlogAudit) Record(ctx context.Context, actorID int64, action, target string, details map[string]any) {
	attrs := []any{
		slog.Int64("actor_id", actorID),
		slog.String("action", action),
		slog.String("target", target),
	}
	for k, v := range details {
		attrs = append(attrs, slog.Any(k, v))
	}
	a.logger.InfoContext(ctx, "audit", attrs...)
}
