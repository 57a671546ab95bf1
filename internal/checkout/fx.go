package checkout

import (
	"go.uber.org/fx"

	"github.com/Victamina15/billtracky-2/internal/checkout/service"
	"github.com/Victamina15/billtracky-2/internal/checkout/session"
)

var Module = fx.Module("checkout.service",
	session.Module,
	fx.Provide(
		service.New,
	),
)
