package warehouse

import (
	"github.com/smallbiznis/orderlens/internal/warehouse/repository"
	"github.com/smallbiznis/orderlens/internal/warehouse/service"
	"go.uber.org/fx"
)

var Module = fx.Module("warehouse.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
