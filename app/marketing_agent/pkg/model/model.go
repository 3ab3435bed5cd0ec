package model

import (
	"time"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/search"
)

// Unavailable 补全不可用时嵌入下游文本的占位符
const Unavailable = "None"

// AnalysisRequest 一次综合分析的用户输入
type AnalysisRequest struct {
	URL         string   `json:"url"`
	Keywords    []string `json:"keywords"`
	Competitors []string `json:"competitors"`
	Industry    string   `json:"industry"`
	BrandName   string   `json:"brand_name"`
}

// PageSnapshot 抓取页面得到的 SEO 要素，创建后不再修改
type PageSnapshot struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Headings        []string `json:"headings"`
	Excerpt         string   `json:"excerpt"`
}

// SEOResult SEO 分析结果
type SEOResult struct {
	Snapshot        PageSnapshot `json:"snapshot"`
	Recommendations string       `json:"recommendations"`
	Available       bool         `json:"available"`
}

// SectionedAnalysis 按固定标签切分后的分析文本，五个标签始终存在
type SectionedAnalysis map[string]string

// CompetitorInsight 单个竞品的分析
type CompetitorInsight struct {
	QuickSummary string            `json:"quick_summary"`
	Analysis     string            `json:"analysis"`
	Metrics      string            `json:"metrics"`
	Sections     SectionedAnalysis `json:"sections"`
	Rankings     []search.Result   `json:"rankings,omitempty"`
}

// CompetitorReport 竞品 URL -> 分析
type CompetitorReport map[string]CompetitorInsight

// Segment 受众分群
type Segment struct {
	Name            string `json:"segment_name"`
	Characteristics string `json:"characteristics"`
}

// EmailTemplate 单个分群的邮件
type EmailTemplate struct {
	Body         string   `json:"content"`
	SubjectLines []string `json:"subject_lines"`
	SendTime     string   `json:"send_time"`
}

// CampaignBundle 分群名 -> 邮件
type CampaignBundle map[string]EmailTemplate

// SocialPost 社交媒体内容
type SocialPost struct {
	Platform  string    `json:"platform"`
	Topic     string    `json:"topic"`
	Tone      string    `json:"tone"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Deadlines 行动计划的三个截止日期
type Deadlines struct {
	ShortTerm  time.Time `json:"short_term"`
	MediumTerm time.Time `json:"medium_term"`
	LongTerm   time.Time `json:"long_term"`
}

// StageStatus 流水线阶段状态
type StageStatus string

const (
	StageSuccess  StageStatus = "success"
	StageDegraded StageStatus = "degraded"
)

// StageResult 综合流水线中单个阶段的结果
type StageResult struct {
	Name     string      `json:"name"`
	Status   StageStatus `json:"status"`
	Progress int         `json:"progress"`
	Detail   string      `json:"detail,omitempty"`
}

// ComprehensiveReport 综合报告
type ComprehensiveReport struct {
	ID          string           `json:"id"`
	Request     AnalysisRequest  `json:"request"`
	SEO         SEOResult        `json:"seo"`
	Competitors CompetitorReport `json:"competitors"`
	Content     SocialPost       `json:"content"`
	Campaign    CampaignBundle   `json:"campaign"`
	Synthesis   string           `json:"synthesis"`
	Deadlines   Deadlines        `json:"deadlines"`
	Stages      []StageResult    `json:"stages"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Degraded 是否有阶段降级
func (r *ComprehensiveReport) Degraded() bool {
	for _, s := range r.Stages {
		if s.Status == StageDegraded {
			return true
		}
	}
	return false
}

// ProductRecommendation 个性化产品推荐
type ProductRecommendation struct {
	CustomerID      string `json:"customer_id"`
	Recommendations string `json:"recommendations"`
}

// SentimentReport 品牌舆情分析
type SentimentReport struct {
	Brand     string          `json:"brand"`
	Timeframe string          `json:"timeframe"`
	Analysis  string          `json:"analysis"`
	Mentions  []search.Result `json:"mentions,omitempty"`
}

// PerformancePrediction 内容表现预测
type PerformancePrediction struct {
	Platform       string `json:"platform"`
	ContentPreview string `json:"content_preview"`
	Prediction     string `json:"prediction"`
}

// PriceReport 竞品价格监控
type PriceReport struct {
	ProductURL string            `json:"product_url"`
	Prices     map[string]string `json:"prices"`
	Analysis   string            `json:"analysis"`
}

// JourneyMap 客户旅程分析
type JourneyMap struct {
	CustomerID string `json:"customer_id"`
	JourneyMap string `json:"journey_map"`
}
