package customer

import (
	"go.uber.org/fx"

	"github.com/Victamina15/billtracky-2/internal/customer/repository"
	"github.com/Victamina15/billtracky-2/internal/customer/service"
)

var Module = fx.Module("customer.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
