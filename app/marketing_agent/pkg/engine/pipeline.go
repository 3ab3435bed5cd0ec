package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/logger"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/prompt"
)

// 综合模式的固定输入
const (
	ComprehensiveCampaignType = "Welcome Series"
	ComprehensivePlatform     = "LinkedIn"
	ComprehensiveTone         = "professional"
)

// DefaultAudience 综合模式使用的默认受众
var DefaultAudience = []dm.Segment{
	{Name: "New Customers", Characteristics: "first_time_buyers"},
	{Name: "Returning Customers", Characteristics: "repeat_buyers"},
}

// ProgressFunc 进度回调，progress 为 0-100
type ProgressFunc func(status string, progress int)

// stage 流水线中的一个阶段，run 返回说明与是否降级
type stage struct {
	name     string
	progress int
	run      func(ctx context.Context, r *dm.ComprehensiveReport) (string, bool)
}

// Deadlines 以参考日期计算 +1 周、+4 周、+12 周三个截止日期
func Deadlines(ref time.Time) dm.Deadlines {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return dm.Deadlines{
		ShortTerm:  day.AddDate(0, 0, 7),
		MediumTerm: day.AddDate(0, 0, 28),
		LongTerm:   day.AddDate(0, 0, 84),
	}
}

// Comprehensive 依次执行 SEO、竞品、内容、邮件四个阶段，再做一次汇总。
// 任何阶段失败都不会中断流水线，不可用的结果以 None 传给后续阶段，阶段状态标记为 degraded。
func (e *Engine) Comprehensive(ctx context.Context, req dm.AnalysisRequest, progress ProgressFunc) *dm.ComprehensiveReport {
	if progress == nil {
		progress = func(string, int) {}
	}

	now := e.now()
	r := &dm.ComprehensiveReport{
		ID:          uuid.NewString(),
		Request:     req,
		Deadlines:   Deadlines(now),
		GeneratedAt: now,
	}

	logger.Log.Infof("开始为 [%s] 生成综合报告，包含 %d 个竞品", req.BrandName, len(req.Competitors))
	progress("starting", 0)

	for _, s := range e.stages(req) {
		detail, degraded := s.run(ctx, r)
		status := dm.StageSuccess
		if degraded {
			status = dm.StageDegraded
			logger.Log.Warnf("阶段 [%s] 降级: %s", s.name, detail)
		}
		r.Stages = append(r.Stages, dm.StageResult{
			Name:     s.name,
			Status:   status,
			Progress: s.progress,
			Detail:   detail,
		})
		progress(s.name, s.progress)
	}

	logger.Log.Infof("综合报告生成完毕 [%s] degraded=%v", r.ID, r.Degraded())
	return r
}

func (e *Engine) stages(req dm.AnalysisRequest) []stage {
	return []stage{
		{
			name:     "seo",
			progress: 25,
			run: func(ctx context.Context, r *dm.ComprehensiveReport) (string, bool) {
				t := &tracker{}
				seo, err := e.seoAnalysis(ctx, req.URL, req.Keywords, t)
				if err != nil {
					r.SEO = dm.SEOResult{
						Snapshot:        dm.PageSnapshot{URL: req.URL, Headings: []string{}},
						Recommendations: dm.Unavailable,
					}
					return err.Error(), true
				}
				r.SEO = *seo
				return unavailableDetail(t), t.degraded()
			},
		},
		{
			name:     "competitors",
			progress: 50,
			run: func(ctx context.Context, r *dm.ComprehensiveReport) (string, bool) {
				t := &tracker{}
				r.Competitors = e.competitorAnalysis(ctx, req.Competitors, req.Keywords, t)
				return unavailableDetail(t), t.degraded()
			},
		},
		{
			name:     "content",
			progress: 75,
			run: func(ctx context.Context, r *dm.ComprehensiveReport) (string, bool) {
				t := &tracker{}
				topic := fmt.Sprintf("%s industry trends", req.Industry)
				r.Content = e.generateContent(ctx, topic, ComprehensivePlatform, ComprehensiveTone, t)
				return unavailableDetail(t), t.degraded()
			},
		},
		{
			name:     "email",
			progress: 90,
			run: func(ctx context.Context, r *dm.ComprehensiveReport) (string, bool) {
				t := &tracker{}
				r.Campaign = e.emailCampaign(ctx, ComprehensiveCampaignType, DefaultAudience, t)
				return unavailableDetail(t), t.degraded()
			},
		},
		{
			name:     "synthesis",
			progress: 100,
			run: func(ctx context.Context, r *dm.ComprehensiveReport) (string, bool) {
				t := &tracker{}
				p := prompt.Comprehensive(req, r.SEO.Recommendations, r.Competitors, r.Content.Content, r.Campaign, r.Deadlines)
				r.Synthesis = e.complete(ctx, p, t)
				return unavailableDetail(t), t.degraded()
			},
		},
	}
}

func unavailableDetail(t *tracker) string {
	if !t.degraded() {
		return ""
	}
	return fmt.Sprintf("%d completion(s) unavailable", t.unavailable)
}
