package di

import (
	"github.com/polkiloo/refmart/internal/adapter/webhook"
	"github.com/polkiloo/refmart/internal/app"
	"github.com/polkiloo/refmart/internal/config"
	"github.com/polkiloo/refmart/internal/logger"
	"github.com/polkiloo/refmart/internal/notify"
	"github.com/polkiloo/refmart/internal/pkg/auth"
	"github.com/polkiloo/refmart/internal/server/http/router"
	"github.com/polkiloo/refmart/internal/storage/postgres"
	"github.com/polkiloo/refmart/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		webhook.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
