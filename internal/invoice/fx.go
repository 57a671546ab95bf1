package invoice

import (
	"go.uber.org/fx"

	"github.com/Victamina15/billtracky-2/internal/invoice/repository"
	"github.com/Victamina15/billtracky-2/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
