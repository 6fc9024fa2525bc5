package event

import (
	"github.com/sehatmu/amalan/internal/event/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("event.repository",
	fx.Provide(repository.New),
)
