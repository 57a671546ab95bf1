package paymentmethod

import (
	"github.com/Victamina15/billtracky-2/internal/paymentmethod/repository"
	"github.com/Victamina15/billtracky-2/internal/paymentmethod/service"
	"go.uber.org/fx"
)

var Module = fx.Module("paymentmethod.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
