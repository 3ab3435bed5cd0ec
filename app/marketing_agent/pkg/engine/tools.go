package engine

import (
	"context"
	"strings"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/logger"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/prompt"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/search"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/section"
)

// 发送时间规则
const (
	SendTimeFirstTime = "14:00 PM"
	SendTimeRepeat    = "09:00 AM"
	SendTimeDefault   = "10:00 AM"
)

// SEOAnalysis 抓取页面并生成 SEO 建议。抓取失败返回 *fetch.FetchFailedError。
func (e *Engine) SEOAnalysis(ctx context.Context, url string, keywords []string) (*dm.SEOResult, error) {
	return e.seoAnalysis(ctx, url, keywords, nil)
}

func (e *Engine) seoAnalysis(ctx context.Context, url string, keywords []string, t *tracker) (*dm.SEOResult, error) {
	logger.Log.Infof("正在分析 SEO: %s", url)
	snap, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	text, ok := e.completeRaw(ctx, prompt.SEO(*snap, keywords), t)
	if !ok {
		text = dm.Unavailable
	}
	return &dm.SEOResult{
		Snapshot:        *snap,
		Recommendations: text,
		Available:       ok,
	}, nil
}

// CompetitorAnalysis 按输入顺序逐个分析竞品，每个竞品三次补全
func (e *Engine) CompetitorAnalysis(ctx context.Context, competitors, keywords []string) dm.CompetitorReport {
	return e.competitorAnalysis(ctx, competitors, keywords, nil)
}

func (e *Engine) competitorAnalysis(ctx context.Context, competitors, keywords []string, t *tracker) dm.CompetitorReport {
	report := make(dm.CompetitorReport, len(competitors))
	for i, c := range competitors {
		logger.Log.Infof("正在分析竞品 (%d/%d): %s", i+1, len(competitors), c)
		report[c] = e.analyzeCompetitor(ctx, c, keywords, t)
	}
	return report
}

func (e *Engine) analyzeCompetitor(ctx context.Context, competitor string, keywords []string, t *tracker) dm.CompetitorInsight {
	rankings := e.search(ctx, &search.Request{Query: competitor, Topic: "general", MaxResults: 10})

	summary := e.complete(ctx, prompt.CompetitorSummary(competitor, keywords), t)

	analysis, ok := e.completeRaw(ctx, prompt.CompetitorAnalysis(competitor, keywords, rankings, section.DefaultLabels), t)
	sections := section.Sectionize(analysis, section.DefaultLabels)
	if !ok {
		analysis = dm.Unavailable
	}

	metrics := e.complete(ctx, prompt.CompetitorMetrics(competitor, keywords), t)

	return dm.CompetitorInsight{
		QuickSummary: summary,
		Analysis:     analysis,
		Metrics:      metrics,
		Sections:     sections,
		Rankings:     rankings,
	}
}

// GenerateContent 生成一条社交媒体内容
func (e *Engine) GenerateContent(ctx context.Context, topic, platform, tone string) dm.SocialPost {
	return e.generateContent(ctx, topic, platform, tone, nil)
}

func (e *Engine) generateContent(ctx context.Context, topic, platform, tone string, t *tracker) dm.SocialPost {
	if tone == "" {
		tone = "professional"
	}
	logger.Log.Infof("正在生成 %s 内容: %s", platform, topic)
	return dm.SocialPost{
		Platform:  platform,
		Topic:     topic,
		Tone:      tone,
		Content:   e.complete(ctx, prompt.SocialPost(topic, platform, tone), t),
		CreatedAt: e.now(),
	}
}

// EmailCampaign 为每个分群生成邮件正文、标题候选与发送时间
func (e *Engine) EmailCampaign(ctx context.Context, campaignType string, segments []dm.Segment) dm.CampaignBundle {
	return e.emailCampaign(ctx, campaignType, segments, nil)
}

func (e *Engine) emailCampaign(ctx context.Context, campaignType string, segments []dm.Segment, t *tracker) dm.CampaignBundle {
	bundle := make(dm.CampaignBundle, len(segments))
	for _, seg := range segments {
		logger.Log.Infof("正在生成邮件 [%s]: %s", campaignType, seg.Name)
		bundle[seg.Name] = dm.EmailTemplate{
			Body:         e.complete(ctx, prompt.EmailCampaign(campaignType, seg), t),
			SubjectLines: e.subjectLines(ctx, campaignType, seg, t),
			SendTime:     SendTime(seg),
		}
	}
	return bundle
}

// SubjectLines 生成标题候选，按行拆分并去掉空行；补全不可用时为空
func (e *Engine) SubjectLines(ctx context.Context, campaignType string, seg dm.Segment) []string {
	return e.subjectLines(ctx, campaignType, seg, nil)
}

func (e *Engine) subjectLines(ctx context.Context, campaignType string, seg dm.Segment, t *tracker) []string {
	lines := []string{}
	text, ok := e.completeRaw(ctx, prompt.SubjectLines(campaignType, seg), t)
	if !ok {
		return lines
	}
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// SendTime 按分群特征给出建议发送时间
func SendTime(seg dm.Segment) string {
	switch seg.Characteristics {
	case "first_time_buyers":
		return SendTimeFirstTime
	case "repeat_buyers":
		return SendTimeRepeat
	default:
		return SendTimeDefault
	}
}
