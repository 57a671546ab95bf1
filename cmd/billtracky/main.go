package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/Victamina15/billtracky-2/internal/clock"
	"github.com/Victamina15/billtracky-2/internal/config"
	"github.com/Victamina15/billtracky-2/internal/migration"
	"github.com/Victamina15/billtracky-2/internal/observability"
	"github.com/Victamina15/billtracky-2/internal/server"
	"github.com/Victamina15/billtracky-2/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
