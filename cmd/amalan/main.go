package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/sehatmu/amalan/internal/clock"
	"github.com/sehatmu/amalan/internal/config"
	"github.com/sehatmu/amalan/internal/migration"
	"github.com/sehatmu/amalan/internal/observability"
	"github.com/sehatmu/amalan/internal/server"
	"github.com/sehatmu/amalan/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		server.Module,
		migration.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
