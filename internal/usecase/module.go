package usecase

import (
	"math/rand/v2"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/refmart/internal/config"
	"github.com/polkiloo/refmart/internal/domain/repository"
	"github.com/polkiloo/refmart/internal/notify"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewReferralUseCase,
	NewProductUseCase,
	newRiskScorer,
	newOrderUseCase,
	NewLedgerUseCase,
	newPayoutUseCase,
)

func newRiskScorer(cfg *config.Config) *RiskScorer {
	// Seeded per process start; tests inject their own draw source.
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	return NewRiskScorer(cfg.HighValueThreshold, rng.Float64)
}

type orderParams struct {
	fx.In

	Orders    repository.OrderRepository
	Products  repository.ProductRepository
	Ledger    repository.LedgerRepository
	Referrals *ReferralUseCase
	Risk      *RiskScorer
	Config    *config.Config
	Notifier  notify.Notifier
	Audit     notify.AuditLog
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Products, p.Ledger, p.Referrals, p.Risk, p.Config.RiskFlagThreshold, p.Notifier, p.Audit)
}

func newPayoutUseCase(cfg *config.Config, payouts repository.PayoutRepository, notifier notify.Notifier, audit notify.AuditLog) *PayoutUseCase {
	return NewPayoutUseCase(payouts, cfg.MinPayout, notifier, audit)
}
