package server

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/internal/service"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/config"
)

// NewHTTPServer 创建 HTTP 服务并注册各工具路由
func NewHTTPServer(c config.ServerConfig, s *service.AgentService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		} else {
			log.NewHelper(logger).Warnf("invalid server timeout %q: %v", c.Timeout, err)
		}
	}

	srv := http.NewServer(opts...)
	RegisterAgentHTTPServer(srv, s)
	return srv
}

// RegisterAgentHTTPServer 注册路由
func RegisterAgentHTTPServer(srv *http.Server, s *service.AgentService) {
	r := srv.Route("/")
	r.POST("/v1/seo", handle(s.SEO))
	r.POST("/v1/competitors", handle(s.Competitors))
	r.POST("/v1/content", handle(s.Content))
	r.POST("/v1/email", handle(s.Email))
	r.POST("/v1/report", handle(s.Report))
	r.POST("/v1/report/download", downloadHandler(s))

	r.POST("/v1/recommendations", handle(s.Recommendations))
	r.POST("/v1/sentiment", handle(s.Sentiment))
	r.POST("/v1/performance", handle(s.Performance))
	r.POST("/v1/prices", handle(s.Prices))
	r.POST("/v1/journey", handle(s.Journey))

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// handle 将 service 方法适配为 kratos 路由处理函数，并经过服务端中间件
func handle[Req, Reply any](fn func(context.Context, *Req) (Reply, error)) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in Req
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return fn(ctx, req.(*Req))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}

func downloadHandler(s *service.AgentService) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in service.AnalysisRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return s.DownloadReport(ctx, req.(*service.AnalysisRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		d := out.(*service.Download)
		ctx.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.FileName))
		return ctx.Blob(nethttp.StatusOK, "text/plain; charset=utf-8", d.Body)
	}
}
