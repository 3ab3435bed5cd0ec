package main

import (
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/internal/server"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/internal/service"
	applog "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/logger"
)

func serveCMD(cfgPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := newEngine(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			id, _ := os.Hostname()
			logger := log.With(log.NewStdLogger(os.Stdout),
				"ts", log.DefaultTimestamp,
				"caller", log.DefaultCaller,
				"service.id", id,
				"service.name", Name,
				"service.version", Version,
			)

			svc := service.NewAgentService(e, logger)
			hs := server.NewHTTPServer(cfg.Server, svc, logger)
			app := kratos.New(
				kratos.ID(id),
				kratos.Name(Name),
				kratos.Version(Version),
				kratos.Logger(logger),
				kratos.Server(hs),
			)
			applog.Log.Infof("HTTP 服务启动，监听 %s", cfg.Server.Addr)
			return app.Run()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
