package service

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/engine"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/fetch"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/report"
)

// Agent 服务层依赖的编排能力，由 *engine.Engine 实现
type Agent interface {
	SEOAnalysis(ctx context.Context, url string, keywords []string) (*dm.SEOResult, error)
	CompetitorAnalysis(ctx context.Context, competitors, keywords []string) dm.CompetitorReport
	GenerateContent(ctx context.Context, topic, platform, tone string) dm.SocialPost
	EmailCampaign(ctx context.Context, campaignType string, segments []dm.Segment) dm.CampaignBundle
	Comprehensive(ctx context.Context, req dm.AnalysisRequest, progress engine.ProgressFunc) *dm.ComprehensiveReport
	ProductRecommendations(ctx context.Context, customer map[string]any) dm.ProductRecommendation
	SentimentAnalysis(ctx context.Context, brand, timeframe string) dm.SentimentReport
	PredictPerformance(ctx context.Context, content, platform string) dm.PerformancePrediction
	PriceMonitor(ctx context.Context, productURL string, competitors []string) dm.PriceReport
	CustomerJourney(ctx context.Context, customer map[string]any) dm.JourneyMap
}

var _ Agent = (*engine.Engine)(nil)

// AgentService 营销工具的 HTTP 服务实现
type AgentService struct {
	agent Agent
	now   func() time.Time
	log   *log.Helper
}

// NewAgentService 创建服务实例
func NewAgentService(agent Agent, logger log.Logger) *AgentService {
	return &AgentService{
		agent: agent,
		now:   time.Now,
		log:   log.NewHelper(logger),
	}
}

// AnalysisRequest 综合报告请求
type AnalysisRequest = dm.AnalysisRequest

// SEORequest SEO 分析请求
type SEORequest struct {
	URL      string   `json:"url"`
	Keywords []string `json:"keywords"`
}

// CompetitorsRequest 竞品分析请求
type CompetitorsRequest struct {
	Competitors []string `json:"competitors"`
	Keywords    []string `json:"keywords"`
}

// ContentRequest 内容生成请求
type ContentRequest struct {
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
	Tone     string `json:"tone"`
}

// EmailRequest 邮件活动请求
type EmailRequest struct {
	CampaignType string       `json:"campaign_type"`
	Segments     []dm.Segment `json:"segments"`
}

// CustomerRequest 客户数据请求
type CustomerRequest struct {
	Customer map[string]any `json:"customer"`
}

// SentimentRequest 舆情分析请求
type SentimentRequest struct {
	Brand     string `json:"brand"`
	Timeframe string `json:"timeframe"`
}

// PerformanceRequest 内容表现预测请求
type PerformanceRequest struct {
	Content  string `json:"content"`
	Platform string `json:"platform"`
}

// PriceRequest 价格监控请求
type PriceRequest struct {
	ProductURL  string   `json:"product_url"`
	Competitors []string `json:"competitors"`
}

// Download 下载的报告文件
type Download struct {
	FileName string
	Body     []byte
}

func invalid(format string, args ...any) error {
	return errors.BadRequest("INVALID_INPUT", fmt.Sprintf(format, args...))
}

// toStatus 将领域错误映射为 kratos 错误
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, engine.ErrInvalidInput):
		return errors.BadRequest("INVALID_INPUT", err.Error())
	case stderrors.Is(err, fetch.ErrFetchFailed):
		return errors.New(502, "FETCH_FAILED", err.Error())
	default:
		return errors.InternalServer("INTERNAL", err.Error())
	}
}

func (s *AgentService) SEO(ctx context.Context, req *SEORequest) (*dm.SEOResult, error) {
	if req.URL == "" || len(req.Keywords) == 0 {
		return nil, invalid("url and keywords are required")
	}
	res, err := s.agent.SEOAnalysis(ctx, req.URL, req.Keywords)
	if err != nil {
		s.log.WithContext(ctx).Warnf("seo analysis failed: %v", err)
		return nil, toStatus(err)
	}
	return res, nil
}

func (s *AgentService) Competitors(ctx context.Context, req *CompetitorsRequest) (dm.CompetitorReport, error) {
	if len(req.Competitors) == 0 || len(req.Competitors) > engine.MaxCompetitors || len(req.Keywords) == 0 {
		return nil, invalid("1-%d competitors and keywords are required", engine.MaxCompetitors)
	}
	return s.agent.CompetitorAnalysis(ctx, req.Competitors, req.Keywords), nil
}

func (s *AgentService) Content(ctx context.Context, req *ContentRequest) (*dm.SocialPost, error) {
	if req.Topic == "" || req.Platform == "" {
		return nil, invalid("topic and platform are required")
	}
	post := s.agent.GenerateContent(ctx, req.Topic, req.Platform, req.Tone)
	return &post, nil
}

func (s *AgentService) Email(ctx context.Context, req *EmailRequest) (dm.CampaignBundle, error) {
	if req.CampaignType == "" || len(req.Segments) == 0 || len(req.Segments) > engine.MaxSegments {
		return nil, invalid("campaign type and 1-%d segments are required", engine.MaxSegments)
	}
	for _, seg := range req.Segments {
		if seg.Name == "" {
			return nil, invalid("segment name is required")
		}
	}
	return s.agent.EmailCampaign(ctx, req.CampaignType, req.Segments), nil
}

func (s *AgentService) Report(ctx context.Context, req *dm.AnalysisRequest) (*dm.ComprehensiveReport, error) {
	if err := engine.ValidateRequest(*req); err != nil {
		return nil, toStatus(err)
	}
	return s.agent.Comprehensive(ctx, *req, s.progress(ctx, req.BrandName)), nil
}

// DownloadReport 生成综合报告并渲染为纯文本附件
func (s *AgentService) DownloadReport(ctx context.Context, req *dm.AnalysisRequest) (*Download, error) {
	r, err := s.Report(ctx, req)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, r); err != nil {
		return nil, toStatus(err)
	}
	return &Download{FileName: report.FileName(req.BrandName, s.now()), Body: buf.Bytes()}, nil
}

func (s *AgentService) Recommendations(ctx context.Context, req *CustomerRequest) (*dm.ProductRecommendation, error) {
	if len(req.Customer) == 0 {
		return nil, invalid("customer data is required")
	}
	r := s.agent.ProductRecommendations(ctx, req.Customer)
	return &r, nil
}

func (s *AgentService) Sentiment(ctx context.Context, req *SentimentRequest) (*dm.SentimentReport, error) {
	if req.Brand == "" {
		return nil, invalid("brand is required")
	}
	r := s.agent.SentimentAnalysis(ctx, req.Brand, req.Timeframe)
	return &r, nil
}

func (s *AgentService) Performance(ctx context.Context, req *PerformanceRequest) (*dm.PerformancePrediction, error) {
	if req.Content == "" || req.Platform == "" {
		return nil, invalid("content and platform are required")
	}
	r := s.agent.PredictPerformance(ctx, req.Content, req.Platform)
	return &r, nil
}

func (s *AgentService) Prices(ctx context.Context, req *PriceRequest) (*dm.PriceReport, error) {
	if req.ProductURL == "" || len(req.Competitors) == 0 || len(req.Competitors) > engine.MaxCompetitors {
		return nil, invalid("product url and 1-%d competitors are required", engine.MaxCompetitors)
	}
	r := s.agent.PriceMonitor(ctx, req.ProductURL, req.Competitors)
	return &r, nil
}

func (s *AgentService) Journey(ctx context.Context, req *CustomerRequest) (*dm.JourneyMap, error) {
	if len(req.Customer) == 0 {
		return nil, invalid("customer data is required")
	}
	r := s.agent.CustomerJourney(ctx, req.Customer)
	return &r, nil
}

func (s *AgentService) progress(ctx context.Context, brand string) engine.ProgressFunc {
	return func(status string, progress int) {
		s.log.WithContext(ctx).Infof("report [%s] %s: %d%%", brand, status, progress)
	}
}
