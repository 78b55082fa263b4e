package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/polkiloo/refmart/internal/domain/model"
)

// Client delivers settlement change notifications to an external eventing
// endpoint as JSON POSTs. Delivery is best effort: failures are logged and
// never propagated into the settlement path.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type event struct {
	Event     string    `json:"event"`
	OrderID   int64     `json:"order_id,omitempty"`
	RequestID int64     `json:"request_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	Entries   int       `json:"entries,omitempty"`
	EmittedAt time.Time `json:"emitted_at"`
}

// NewClient creates a webhook notifier with a default timeout.
func NewClient(endpoint string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("webhook url must be absolute")
	}
	return &Client{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *Client) OrderCreated(ctx context.Context, order *model.Order) {
	c.post(ctx, event{Event: "order.created", OrderID: order.ID, Status: string(order.Status)})
}

func (c *Client) OrderVerified(ctx context.Context, order *model.Order) {
	c.post(ctx, event{Event: "order.verified", OrderID: order.ID, Status: string(order.Status)})
}

func (c *Client) EntriesPosted(ctx context.Context, orderID int64, entries []model.LedgerEntry) {
	c.post(ctx, event{Event: "ledger.posted", OrderID: orderID, Entries: len(entries)})
}

func (c *Client) PayoutResolved(ctx context.Context, request *model.PayoutRequest) {
	c.post(ctx, event{Event: "payout.resolved", RequestID: request.ID, Status: string(request.Status)})
}

func (c *Client) post(ctx context.Context, ev event) {
	ev.EmittedAt = time.Now().UTC()

	payload, err := json.Marshal(ev)
	if err != nil {
		c.logger.Error("marshal webhook event", slog.String("error", err.Error()))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("build webhook request", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("webhook delivery failed",
			slog.String("event", ev.Event),
			slog.String("error", err.Error()),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("webhook rejected",
			slog.String("event", ev.Event),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
	}
}
