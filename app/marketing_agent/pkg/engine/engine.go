package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/config"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/fetch"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/llm"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/logger"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/search"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/search/factory"
)

// PageFetcher 页面抓取
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*dm.PageSnapshot, error)
	Price(ctx context.Context, url string) string
}

var _ PageFetcher = (*fetch.Fetcher)(nil)

// Engine 核心编排引擎。所有调用顺序执行，引擎本身不持有请求级状态。
type Engine struct {
	completer llm.Completer
	fetcher   PageFetcher
	searcher  search.Searcher
	limiter   *rate.Limiter
	now       func() time.Time
}

// Option 引擎可选项
type Option func(*Engine)

// WithSearcher 设置搜索源，为 nil 时跳过竞品排名与舆情检索
func WithSearcher(s search.Searcher) Option {
	return func(e *Engine) { e.searcher = s }
}

// WithLimiter 替换搜索限流器
func WithLimiter(l *rate.Limiter) Option {
	return func(e *Engine) { e.limiter = l }
}

// WithClock 替换时钟
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine 创建引擎实例
func NewEngine(completer llm.Completer, fetcher PageFetcher, opts ...Option) *Engine {
	e := &Engine{
		completer: completer,
		fetcher:   fetcher,
		// 搜索接口每秒一次
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromConfig 根据配置装配补全客户端、抓取器与搜索源
func NewEngineFromConfig(ctx context.Context, cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}
	if searcher == nil {
		logger.Log.Info("未配置搜索源，竞品排名与舆情检索将跳过")
	}

	return NewEngine(client, fetch.NewFetcher(), WithSearcher(searcher)), nil
}

// ErrInvalidInput 必填字段缺失或数量越界
var ErrInvalidInput = errors.New("invalid input")

const (
	MaxCompetitors = 5
	MaxSegments    = 3
)

// ValidateRequest 粗粒度校验综合分析输入，任一项不满足即整体拒绝
func ValidateRequest(req dm.AnalysisRequest) error {
	if req.URL == "" || req.BrandName == "" || req.Industry == "" ||
		len(req.Keywords) == 0 || len(req.Competitors) == 0 || len(req.Competitors) > MaxCompetitors {
		return fmt.Errorf("%w: url, keywords, 1-%d competitors, industry and brand name are required", ErrInvalidInput, MaxCompetitors)
	}
	return nil
}

// tracker 统计一个阶段内不可用的补全次数
type tracker struct {
	unavailable int
}

func (t *tracker) degraded() bool { return t != nil && t.unavailable > 0 }

// completeRaw 调用补全并记录不可用次数
func (e *Engine) completeRaw(ctx context.Context, prompt string, t *tracker) (string, bool) {
	text, ok := e.completer.Complete(ctx, prompt)
	if !ok && t != nil {
		t.unavailable++
	}
	return text, ok
}

// complete 补全不可用时返回占位符 None
func (e *Engine) complete(ctx context.Context, prompt string, t *tracker) string {
	return llm.OrNone(e.completeRaw(ctx, prompt, t))
}

// search 经限流后检索，未配置或失败时返回 nil
func (e *Engine) search(ctx context.Context, req *search.Request) []search.Result {
	if e.searcher == nil {
		return nil
	}
	if err := e.limiter.Wait(ctx); err != nil {
		logger.Log.Warnf("搜索限流等待中断 [%s]: %v", req.Query, err)
		return nil
	}
	resp, err := e.searcher.Search(ctx, req)
	if err != nil {
		logger.Log.Errorf("搜索失败 [%s]: %v", req.Query, err)
		return nil
	}
	return resp.Results
}
