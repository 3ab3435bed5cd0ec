// Package prompt 组装各类分析的提示词。所有函数都是纯函数，不校验输入内容。
package prompt

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/search"
)

// EmailPreviewLen 综合报告中每个分群邮件正文保留的字符数
const EmailPreviewLen = 100

// SEO 页面 SEO 分析
func SEO(snap dm.PageSnapshot, keywords []string) string {
	var sb strings.Builder
	sb.WriteString("Analyze this webpage SEO for the following elements:\n")
	fmt.Fprintf(&sb, "URL: %s\n", snap.URL)
	fmt.Fprintf(&sb, "Title: %s\n", snap.Title)
	fmt.Fprintf(&sb, "Meta Description: %s\n", snap.MetaDescription)
	fmt.Fprintf(&sb, "H1 Tags: %s\n", strings.Join(snap.Headings, ", "))
	fmt.Fprintf(&sb, "Target Keywords: %s\n", strings.Join(keywords, ", "))
	if snap.Excerpt != "" {
		fmt.Fprintf(&sb, "Page Excerpt: %s\n", snap.Excerpt)
	}
	sb.WriteString(`
Provide specific recommendations for:
1. Title optimization
2. Meta description improvements
3. Content structure
4. Keyword placement
5. Technical SEO improvements`)
	return sb.String()
}

// CompetitorSummary 竞品一句话概览
func CompetitorSummary(competitor string, keywords []string) string {
	return fmt.Sprintf(`Give a quick 2-3 sentence summary of %s as a competitor.
Focus on who they serve and how they position themselves for these keywords: %s`,
		competitor, strings.Join(keywords, ", "))
}

// CompetitorAnalysis 竞品完整分析，要求按五个固定标题分段
func CompetitorAnalysis(competitor string, keywords []string, rankings []search.Result, labels []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the market position and strategy for %s based on:\n", competitor)
	sb.WriteString("1. Search rankings\n")
	sb.WriteString("2. Content strategy\n")
	fmt.Fprintf(&sb, "3. Keywords they're ranking for: %s\n", strings.Join(keywords, ", "))
	sb.WriteString("4. Recent changes or updates\n")

	if len(rankings) > 0 {
		sb.WriteString("\nSearch results mentioning them:\n")
		for i, r := range rankings {
			fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, r.Title, r.URL)
		}
	}

	sb.WriteString("\nStructure your answer under exactly these headings, each on its own line:\n")
	for _, l := range labels {
		fmt.Fprintf(&sb, "%s\n", l)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// CompetitorMetrics 竞品量化指标估计
func CompetitorMetrics(competitor string, keywords []string) string {
	return fmt.Sprintf(`Estimate key marketing metrics for %s:
1. Estimated monthly organic traffic
2. Domain authority
3. Social media presence
4. Content publishing frequency
5. Ranking strength for: %s
Present each metric on its own line as "Metric: value".`,
		competitor, strings.Join(keywords, ", "))
}

// SocialPost 社交媒体帖子
func SocialPost(topic, platform, tone string) string {
	return fmt.Sprintf(`Create a %s post about %s with a %s tone.
Include:
1. Main post content
2. Relevant hashtags
3. Call to action
4. Best posting time recommendation`, platform, topic, tone)
}

// EmailCampaign 分群邮件
func EmailCampaign(campaignType string, segment dm.Segment) string {
	return fmt.Sprintf(`Create an email campaign for:
Campaign Type: %s
Audience Segment: %s (%s)

Include:
1. Subject line options
2. Email body
3. Call to action
4. Personalization elements`, campaignType, segment.Name, segment.Characteristics)
}

// SubjectLines 邮件标题候选
func SubjectLines(campaignType string, segment dm.Segment) string {
	return fmt.Sprintf("Generate 5 engaging subject lines for %s campaign targeting %s", campaignType, segment.Name)
}

// Comprehensive 汇总四个阶段结果的最终报告提示词。
// 邮件正文只保留前 EmailPreviewLen 个字符，其余字段完整嵌入。
func Comprehensive(req dm.AnalysisRequest, seoRecommendations string, competitors dm.CompetitorReport, content string, campaign dm.CampaignBundle, deadlines dm.Deadlines) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a comprehensive marketing report for %s in the %s industry.\n\n", req.BrandName, req.Industry)

	fmt.Fprintf(&sb, "Website: %s\n", req.URL)
	fmt.Fprintf(&sb, "Target Keywords: %s\n\n", strings.Join(req.Keywords, ", "))

	fmt.Fprintf(&sb, "SEO Analysis:\n%s\n\n", seoRecommendations)

	sb.WriteString("Competitor Analysis:\n")
	// 按输入顺序输出，map 迭代顺序不稳定
	for _, c := range req.Competitors {
		insight, ok := competitors[c]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "- %s:\n%s\n", c, insight.Analysis)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Content Sample:\n%s\n\n", content)

	sb.WriteString("Email Campaign Previews:\n")
	for _, name := range sortedKeys(campaign) {
		fmt.Fprintf(&sb, "- %s: %s\n", name, Truncate(campaign[name].Body, EmailPreviewLen))
	}
	sb.WriteString("\n")

	sb.WriteString(`Provide:
1. Executive summary
2. Key findings across SEO, competitors, content and email
3. Prioritized action plan with these deadlines:
`)
	fmt.Fprintf(&sb, "   - Short-term (by %s)\n", deadlines.ShortTerm.Format(time.DateOnly))
	fmt.Fprintf(&sb, "   - Medium-term (by %s)\n", deadlines.MediumTerm.Format(time.DateOnly))
	fmt.Fprintf(&sb, "   - Long-term (by %s)\n", deadlines.LongTerm.Format(time.DateOnly))
	sb.WriteString("4. KPIs to track")
	return sb.String()
}

// ProductRecommendation 个性化产品推荐
func ProductRecommendation(customer map[string]any) string {
	return fmt.Sprintf(`Based on the following customer data:
%s

Generate personalized product recommendations considering:
1. Past purchase history
2. Browsing behavior
3. Demographics
4. Market trends`, formatData(customer))
}

// Sentiment 品牌舆情
func Sentiment(brand string, mentions []search.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the sentiment and brand perception for %s based on these mentions:\n", brand)
	if len(mentions) == 0 {
		sb.WriteString("[]\n")
	}
	for _, m := range mentions {
		fmt.Fprintf(&sb, "- %s: %s\n", m.Title, m.Content)
	}
	sb.WriteString(`
Provide:
1. Overall sentiment score (positive/negative/neutral)
2. Key positive mentions
3. Key concerns or negative feedback
4. Trend analysis
5. Recommendations for improvement`)
	return sb.String()
}

// PerformancePrediction 内容表现预测
func PerformancePrediction(content, platform string) string {
	return fmt.Sprintf(`Analyze this content for %s and predict its performance:
%s

Consider:
1. Engagement potential (likes, shares, comments)
2. Viral potential
3. SEO impact
4. Target audience resonance
5. Best posting time and frequency
6. Potential improvements`, platform, content)
}

// PriceAnalysis 价格策略分析，prices 的 key 为 "main_product" 或竞品 URL
func PriceAnalysis(prices map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze these prices and provide recommendations:\nMain product: %s\nCompetitor prices:\n", prices["main_product"])
	for _, k := range sortedKeys(prices) {
		if k == "main_product" {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", k, prices[k])
	}
	sb.WriteString(`
Consider:
1. Price positioning
2. Competitive advantage
3. Pricing strategy recommendations
4. Market opportunity`)
	return sb.String()
}

// CustomerJourney 客户旅程
func CustomerJourney(customer map[string]any) string {
	return fmt.Sprintf(`Analyze this customer's journey based on their data:
%s

Map out:
1. Key touchpoints
2. Pain points
3. Conversion opportunities
4. Personalization recommendations
5. Next best actions
6. Retention strategies`, formatData(customer))
}

// Truncate 按字符截断
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatData(data map[string]any) string {
	var sb strings.Builder
	for _, k := range sortedKeys(data) {
		fmt.Fprintf(&sb, "%s: %v\n", k, data[k])
	}
	return strings.TrimRight(sb.String(), "\n")
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}
