//go:build wireinject
// +build wireinject

package main

import (
	"Inkwell/config"
	"Inkwell/dao"
	"Inkwell/dao/cache"
	"Inkwell/handler"
	"Inkwell/middleware"
	"Inkwell/pkg/client"
	"Inkwell/pkg/cursor"
	"Inkwell/pkg/database"
	"Inkwell/server"
	"Inkwell/service"

	"github.com/google/wire"
)

var storeSet = wire.NewSet(
	provideClock,
	database.NewDB,
	client.NewRedisClient,
	config.ProvideFeedConfig,
	config.ProvideCursorConfig,
	cursor.NewCodec,
	cache.ProviderSet,
	dao.ProviderSet,
	service.ProviderSet,
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		storeSet,
		middleware.NewAuthenticator,
		wire.Bind(new(middleware.UserResolver), new(*service.UserService)),

		wire.Struct(new(handler.Health), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Follow), "*"),
		wire.Struct(new(handler.Post), "*"),
		wire.Struct(new(handler.Comment), "*"),
		wire.Struct(new(handler.Feed), "*"),
		wire.Struct(new(handler.Dashboard), "*"),

		wire.Struct(new(server.Handlers), "*"),
		server.NewGinEngine,
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil
}

func InitCommands(cfg *config.Config) (*Commands, error) {
	wire.Build(
		storeSet,
		wire.Struct(new(Commands), "*"),
	)
	return nil, nil
}
