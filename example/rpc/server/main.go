package main

import (
	"flag"

	"go.uber.org/zap"

	"channelcall/rpc"
)

func main() {
	address := flag.String("address", ":8081", "listen address")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	svr := rpc.NewServer(rpc.ServerWithLogger(logger))
	if err = svr.RegisterService(&UserService{}); err != nil {
		logger.Fatal("register service", zap.Error(err))
	}
	if err = svr.RegisterService(&UserServiceProto{}); err != nil {
		logger.Fatal("register service", zap.Error(err))
	}
	logger.Info("rpc server listening", zap.String("address", *address))
	if err = svr.Start(*address); err != nil {
		logger.Fatal("rpc server stopped", zap.Error(err))
	}
}
