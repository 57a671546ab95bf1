package catalog

import (
	"github.com/Victamina15/billtracky-2/internal/catalog/repository"
	"github.com/Victamina15/billtracky-2/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
