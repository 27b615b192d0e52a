package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/analytics"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/bulk"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/logger"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/notify"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/oracle"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/sweep"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/server"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		oracle.Module,
		notify.Module,

		snapshot.Module,
		share.Module,
		bulk.Module,
		pricewatch.Module,
		sweep.Module,
		recovery.Module,
		analytics.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
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
