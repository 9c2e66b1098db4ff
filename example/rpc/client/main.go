package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/metadata"

	"channelcall"
	"channelcall/grpcchan"
	promobserver "channelcall/observability/metrics/prometheus"
	"channelcall/observability/opentelemetry"
	"channelcall/rpc"
)

type User struct {
	Id    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FindByUserIdReq struct {
	Id int64 `json:"id"`
}

type FindByUserIdResp struct {
	User *User `json:"user"`
}

type UserService struct {
	GetById     func(ctx context.Context, req *FindByUserIdReq) (*FindByUserIdResp, error)
	AlwaysError func(ctx context.Context, req *FindByUserIdReq) (*FindByUserIdResp, error)
}

func (u *UserService) Name() string {
	return "user"
}

func main() {
	configPath := flag.String("config", "example/rpc/client/config.yaml", "client config")
	metricsAddr := flag.String("metrics", ":9090", "prometheus listen address")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := rpc.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	factory, err := rpc.NewChannelFactoryFromConfig(cfg)
	if err != nil {
		logger.Fatal("build channel factory", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	metrics, err := promobserver.ObserverBuilder{
		Namespace: "example",
		Subsystem: "user_client",
		Name:      "invoke",
		Help:      "invocations of the user service",
	}.Build(reg)
	if err != nil {
		logger.Fatal("register metrics", zap.Error(err))
	}
	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
			logger.Warn("metrics endpoint stopped", zap.Error(err))
		}
	}()

	h := channelcall.NewHandler[*rpc.Channel](
		channelcall.WithLogger(logger),
		channelcall.WithObserver(metrics),
		channelcall.WithObserver(opentelemetry.NewObserver(nil)),
		channelcall.WithCloseTimeout(cfg.CloseTimeout),
	)
	scopes := grpcchan.NewMetadataScope(metadata.Pairs("x-client", "example"))

	var eg errgroup.Group
	for i := int64(1); i <= 8; i++ {
		id := i
		eg.Go(func() error {
			return h.Invoke(context.Background(), scopes, factory, cfg.Address,
				func(ctx context.Context, ch *rpc.Channel) error {
					us := &UserService{}
					if err := rpc.Bind(ch, us); err != nil {
						return err
					}
					resp, err := us.GetById(ctx, &FindByUserIdReq{Id: id})
					if err != nil {
						return err
					}
					if resp.User == nil {
						logger.Warn("user not found", zap.Int64("id", id))
						return nil
					}
					logger.Info("user found", zap.Int64("id", resp.User.Id), zap.String("name", resp.User.Name))
					return nil
				})
		})
	}
	if err = eg.Wait(); err != nil {
		logger.Error("invoke user service", zap.Error(err))
	}

	// a remote error leaves the channel usable, so it is still closed gracefully
	err = h.Invoke(context.Background(), scopes, factory, cfg.Address,
		func(ctx context.Context, ch *rpc.Channel) error {
			us := &UserService{}
			if err := rpc.Bind(ch, us); err != nil {
				return err
			}
			_, err := us.AlwaysError(ctx, &FindByUserIdReq{Id: 1})
			return err
		})
	logger.Info("remote error", zap.Error(err), zap.Bool("communication", channelcall.IsCommunicationFault(err)))
}
