package employee

import (
	"github.com/sehatmu/amalan/internal/employee/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("employee.directory",
	fx.Provide(repository.New),
)
