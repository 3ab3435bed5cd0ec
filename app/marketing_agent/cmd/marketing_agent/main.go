package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/config"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/engine"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 服务名称
	Name = "marketing_agent"
	// Version 服务版本号
	Version string
)

func main() {
	var cfgPath string
	root := &cobra.Command{
		Use:           "marketing_agent",
		Short:         "AI marketing toolkit: SEO, competitors, content, email and reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "app/marketing_agent/configs/config.yaml", "config file path")

	root.AddCommand(
		serveCMD(&cfgPath),
		seoCMD(&cfgPath),
		competitorsCMD(&cfgPath),
		contentCMD(&cfgPath),
		emailCMD(&cfgPath),
		reportCMD(&cfgPath),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, cfgErr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup 加载配置、初始化日志并校验凭证
func setup(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("无法加载配置文件: %w", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("无法初始化日志: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEngine 供各工具子命令使用
func newEngine(ctx context.Context, path string) (*engine.Engine, *config.Config, error) {
	cfg, err := setup(path)
	if err != nil {
		return nil, nil, err
	}
	e, err := engine.NewEngineFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return e, cfg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
