package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/refmart/internal/app"
	"github.com/polkiloo/refmart/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(facade *app.SettlementFacade) handlers.SettlementFacade { return facade }),
	fx.Provide(Setup),
)
