package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/orderlens/internal/clock"
	"github.com/smallbiznis/orderlens/internal/config"
	"github.com/smallbiznis/orderlens/internal/migration"
	"github.com/smallbiznis/orderlens/internal/observability"
	"github.com/smallbiznis/orderlens/internal/server"
	"github.com/smallbiznis/orderlens/pkg/db"
	"go.uber.org/fx"
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
