package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/refmart/internal/app"
	"github.com/polkiloo/refmart/internal/config"
	"github.com/polkiloo/refmart/internal/domain/repository"
	"github.com/polkiloo/refmart/internal/storage/postgres"
	"github.com/polkiloo/refmart/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		JWTSecret:          "secret",
		MinPayout:          decimal.NewFromInt(50),
		HighValueThreshold: decimal.NewFromInt(1000),
		RiskFlagThreshold:  80,
		ReconcileInterval:  time.Millisecond,
		ReconcileBatch:     1,
		WorkerPoolSize:     1,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	users := test.NewUserRepositoryStub()
	salespeople := test.NewSalespersonRepositoryStub()
	products := test.NewProductRepositoryStub()
	orders := &test.OrderRepositoryStub{}
	ledger := &test.LedgerRepositoryStub{}
	payouts := &test.PayoutRepositoryStub{}

	var facade *app.SettlementFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(users)),
			fx.Replace(repository.SalespersonRepository(salespeople)),
			fx.Replace(repository.ProductRepository(products)),
			fx.Replace(repository.OrderRepository(orders)),
			fx.Replace(repository.LedgerRepository(ledger)),
			fx.Replace(repository.PayoutRepository(payouts)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected settlement facade instance")
	}
}
