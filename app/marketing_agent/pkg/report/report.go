package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/template"
	"time"

	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/section"
)

const textTpl = `MARKETING REPORT: {{.Request.BrandName}}
Industry: {{.Request.Industry}}
Website: {{.Request.URL}}
Generated: {{date .GeneratedAt}}
Report ID: {{.ID}}
{{rule}}
EXECUTIVE SYNTHESIS
{{rule}}
{{.Synthesis}}

{{rule}}
SEO ANALYSIS
{{rule}}
Title: {{.SEO.Snapshot.Title}}
Meta Description: {{.SEO.Snapshot.MetaDescription}}
H1 Tags: {{join .SEO.Snapshot.Headings ", "}}

{{.SEO.Recommendations}}

{{rule}}
COMPETITOR ANALYSIS
{{rule}}
{{range $url := .Request.Competitors}}{{with index $.Competitors $url}}
## {{$url}}
Summary: {{.QuickSummary}}
{{range $label := labels}}
### {{$label}}
{{placeholder (index $.Competitors $url).Sections $label}}
{{end}}
Metrics:
{{.Metrics}}
{{end}}{{end}}
{{rule}}
CONTENT ({{.Content.Platform}})
{{rule}}
{{.Content.Content}}

{{rule}}
EMAIL CAMPAIGN
{{rule}}
{{range $name := segments .Campaign}}{{with index $.Campaign $name}}
## {{$name}} (send at {{.SendTime}})
Subject lines:
{{range .SubjectLines}}  - {{.}}
{{end}}
{{.Body}}
{{end}}{{end}}
{{rule}}
ACTION PLAN DEADLINES
{{rule}}
Short-term:  {{date .Deadlines.ShortTerm}}
Medium-term: {{date .Deadlines.MediumTerm}}
Long-term:   {{date .Deadlines.LongTerm}}

Pipeline stages:
{{range .Stages}}  - {{.Name}}: {{.Status}}{{if .Detail}} ({{.Detail}}){{end}}
{{end}}`

// EmptySection 空小节的占位文本
const EmptySection = "No information available."

var tpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"rule":   func() string { return strings.Repeat("=", 60) },
	"date":   func(t time.Time) string { return t.Format(time.DateOnly) },
	"join":   strings.Join,
	"labels": func() []string { return section.DefaultLabels },
	"placeholder": func(s dm.SectionedAnalysis, label string) string {
		if v := s[label]; v != "" {
			return v
		}
		return EmptySection
	},
	"segments": func(b dm.CampaignBundle) []string { return slices.Sorted(maps.Keys(b)) },
}).Parse(textTpl))

// Render 将综合报告渲染为纯文本
func Render(w io.Writer, r *dm.ComprehensiveReport) error {
	if err := tpl.Execute(w, r); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// FileName 下载文件名：<品牌>_marketing_report_<YYYY-MM-DD>.txt
func FileName(brand string, date time.Time) string {
	brand = strings.Join(strings.Fields(brand), "_")
	if brand == "" {
		brand = "brand"
	}
	return fmt.Sprintf("%s_marketing_report_%s.txt", brand, date.Format(time.DateOnly))
}
