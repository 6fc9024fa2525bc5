package report

import (
	"github.com/sehatmu/amalan/internal/cache"
	"github.com/sehatmu/amalan/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	cache.Module,
	fx.Provide(service.NewService),
)
