package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/fetch"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/search"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/section"
)

// fakeCompleter 记录所有提示词，reply 为 nil 时始终不可用
type fakeCompleter struct {
	reply   func(prompt string) (string, bool)
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, bool) {
	f.prompts = append(f.prompts, prompt)
	if f.reply == nil {
		return "", false
	}
	return f.reply(prompt)
}

func nullCompleter() *fakeCompleter { return &fakeCompleter{} }

func echoCompleter(text string) *fakeCompleter {
	return &fakeCompleter{reply: func(string) (string, bool) { return text, true }}
}

type fakeFetcher struct {
	snap   *dm.PageSnapshot
	err    error
	prices map[string]string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*dm.PageSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := *f.snap
	s.URL = url
	return &s, nil
}

func (f *fakeFetcher) Price(_ context.Context, url string) string {
	if p, ok := f.prices[url]; ok {
		return p
	}
	return fetch.PriceNotFound
}

type fakeSearcher struct {
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	f.queries = append(f.queries, req.Query)
	return &search.Response{Results: []search.Result{{Title: "result for " + req.Query, URL: "https://r.example"}}}, nil
}

func okFetcher() *fakeFetcher {
	return &fakeFetcher{snap: &dm.PageSnapshot{Title: "Acme", MetaDescription: "CRM", Headings: []string{"Grow"}}}
}

var refDate = time.Date(2025, 3, 24, 15, 4, 5, 0, time.UTC)

func newTestEngine(c *fakeCompleter, f *fakeFetcher, opts ...Option) *Engine {
	opts = append([]Option{
		WithClock(func() time.Time { return refDate }),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	}, opts...)
	return NewEngine(c, f, opts...)
}

var fullRequest = dm.AnalysisRequest{
	URL:         "https://www.acme.io",
	Keywords:    []string{"crm software", "marketing automation"},
	Competitors: []string{"https://www.hubspot.com", "https://www.salesforce.com", "https://www.zoho.com"},
	Industry:    "SaaS",
	BrandName:   "Acme",
}

func TestDeadlines(t *testing.T) {
	d := Deadlines(time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-03-31", d.ShortTerm.Format(time.DateOnly))
	assert.Equal(t, "2025-04-21", d.MediumTerm.Format(time.DateOnly))
	assert.Equal(t, "2025-06-16", d.LongTerm.Format(time.DateOnly))
}

func TestComprehensive_AllCompletionsNull(t *testing.T) {
	c := nullCompleter()
	e := newTestEngine(c, okFetcher())

	var progress []int
	r := e.Comprehensive(context.Background(), fullRequest, func(_ string, p int) {
		progress = append(progress, p)
	})

	require.NotNil(t, r)
	assert.Equal(t, []int{0, 25, 50, 75, 90, 100}, progress)
	require.Len(t, r.Stages, 5)
	names := make([]string, 0, len(r.Stages))
	for _, s := range r.Stages {
		names = append(names, s.Name)
		assert.Equal(t, dm.StageDegraded, s.Status, s.Name)
	}
	assert.Equal(t, []string{"seo", "competitors", "content", "email", "synthesis"}, names)
	assert.True(t, r.Degraded())

	assert.Equal(t, dm.Unavailable, r.SEO.Recommendations)
	assert.False(t, r.SEO.Available)
	assert.Equal(t, dm.Unavailable, r.Content.Content)
	assert.Equal(t, dm.Unavailable, r.Synthesis)
	for _, insight := range r.Competitors {
		assert.Equal(t, dm.Unavailable, insight.Analysis)
		assert.Len(t, insight.Sections, len(section.DefaultLabels))
	}
	for _, tpl := range r.Campaign {
		assert.Equal(t, dm.Unavailable, tpl.Body)
		assert.Empty(t, tpl.SubjectLines)
	}

	synthesis := c.prompts[len(c.prompts)-1]
	assert.Contains(t, synthesis, "SEO Analysis:\nNone")
	assert.Contains(t, synthesis, "Content Sample:\nNone")
	assert.Contains(t, synthesis, "- New Customers: None")
}

func TestComprehensive_SuccessPath(t *testing.T) {
	longEmail := strings.Repeat("x", 180)
	c := &fakeCompleter{reply: func(p string) (string, bool) {
		switch {
		case strings.HasPrefix(p, "Create an email campaign"):
			return longEmail, true
		case strings.HasPrefix(p, "Analyze the market position"):
			return "Content Strategy\nweekly blog\nMarket Presence\nglobal", true
		default:
			return "ok", true
		}
	}}
	e := newTestEngine(c, okFetcher())

	r := e.Comprehensive(context.Background(), fullRequest, nil)

	assert.False(t, r.Degraded())
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, refDate, r.GeneratedAt)
	assert.Equal(t, "2025-03-31", r.Deadlines.ShortTerm.Format(time.DateOnly))

	require.Len(t, r.Competitors, 3)
	for _, url := range fullRequest.Competitors {
		insight, ok := r.Competitors[url]
		require.True(t, ok, url)
		assert.Equal(t, "weekly blog", insight.Sections["Content Strategy"])
		assert.Equal(t, "global", insight.Sections["Market Presence"])
		assert.Equal(t, "", insight.Sections["Keyword Analysis"])
	}

	assert.Equal(t, "SaaS industry trends", r.Content.Topic)
	assert.Equal(t, ComprehensivePlatform, r.Content.Platform)
	require.Len(t, r.Campaign, 2)
	assert.Equal(t, SendTimeFirstTime, r.Campaign["New Customers"].SendTime)
	assert.Equal(t, SendTimeRepeat, r.Campaign["Returning Customers"].SendTime)

	synthesis := c.prompts[len(c.prompts)-1]
	assert.Contains(t, synthesis, strings.Repeat("x", 100))
	assert.NotContains(t, synthesis, strings.Repeat("x", 101))
	assert.Contains(t, synthesis, "Long-term (by 2025-06-16)")
}

func TestComprehensive_FetchFailureDegradesOnlySEO(t *testing.T) {
	f := &fakeFetcher{err: &fetch.FetchFailedError{URL: fullRequest.URL, Err: errors.New("timeout")}}
	e := newTestEngine(echoCompleter("ok"), f)

	r := e.Comprehensive(context.Background(), fullRequest, nil)

	require.Len(t, r.Stages, 5)
	assert.Equal(t, dm.StageDegraded, r.Stages[0].Status)
	assert.Contains(t, r.Stages[0].Detail, "timeout")
	for _, s := range r.Stages[1:] {
		assert.Equal(t, dm.StageSuccess, s.Status, s.Name)
	}
	assert.Equal(t, dm.Unavailable, r.SEO.Recommendations)
	assert.Equal(t, "ok", r.Synthesis)
}

func TestSEOAnalysis(t *testing.T) {
	c := echoCompleter("1. Title optimization")
	e := newTestEngine(c, okFetcher())

	res, err := e.SEOAnalysis(context.Background(), "https://www.acme.io", []string{"crm"})
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, "Acme", res.Snapshot.Title)
	assert.Equal(t, "1. Title optimization", res.Recommendations)
	require.Len(t, c.prompts, 1)
	assert.Contains(t, c.prompts[0], "Target Keywords: crm")
}

func TestSEOAnalysis_FetchFailed(t *testing.T) {
	f := &fakeFetcher{err: &fetch.FetchFailedError{URL: "u", Err: errors.New("status 500")}}
	c := echoCompleter("unused")
	e := newTestEngine(c, f)

	_, err := e.SEOAnalysis(context.Background(), "u", nil)
	assert.ErrorIs(t, err, fetch.ErrFetchFailed)
	assert.Empty(t, c.prompts)
}

func TestCompetitorAnalysis_UsesSearcher(t *testing.T) {
	s := &fakeSearcher{}
	c := echoCompleter("text")
	e := newTestEngine(c, okFetcher(), WithSearcher(s))

	report := e.CompetitorAnalysis(context.Background(), []string{"https://a.io", "https://b.io"}, []string{"crm"})

	assert.Equal(t, []string{"https://a.io", "https://b.io"}, s.queries)
	require.Len(t, report, 2)
	assert.Len(t, report["https://a.io"].Rankings, 1)
	assert.Len(t, c.prompts, 6)
	assert.Contains(t, c.prompts[1], "result for https://a.io")
}

func TestSubjectLines(t *testing.T) {
	e := newTestEngine(echoCompleter("1. Welcome aboard!\n\n2. Your first order ships free\n"), okFetcher())

	lines := e.SubjectLines(context.Background(), "welcome_series", DefaultAudience[0])
	assert.Equal(t, []string{"1. Welcome aboard!", "2. Your first order ships free"}, lines)

	e = newTestEngine(nullCompleter(), okFetcher())
	lines = e.SubjectLines(context.Background(), "welcome_series", DefaultAudience[0])
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestSendTime(t *testing.T) {
	assert.Equal(t, "14:00 PM", SendTime(dm.Segment{Characteristics: "first_time_buyers"}))
	assert.Equal(t, "09:00 AM", SendTime(dm.Segment{Characteristics: "repeat_buyers"}))
	assert.Equal(t, "10:00 AM", SendTime(dm.Segment{Characteristics: "lapsed"}))
}

func TestGenerateContent_DefaultTone(t *testing.T) {
	c := echoCompleter("post")
	post := newTestEngine(c, okFetcher()).GenerateContent(context.Background(), "AI trends", "LinkedIn", "")
	assert.Equal(t, "professional", post.Tone)
	assert.Equal(t, refDate, post.CreatedAt)
	assert.Contains(t, c.prompts[0], "with a professional tone")
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(fullRequest))

	missing := fullRequest
	missing.BrandName = ""
	assert.ErrorIs(t, ValidateRequest(missing), ErrInvalidInput)

	tooMany := fullRequest
	tooMany.Competitors = []string{"a", "b", "c", "d", "e", "f"}
	assert.ErrorIs(t, ValidateRequest(tooMany), ErrInvalidInput)

	none := fullRequest
	none.Competitors = nil
	assert.ErrorIs(t, ValidateRequest(none), ErrInvalidInput)
}

func TestCompetitorAnalysis_OneEntryPerURL(t *testing.T) {
	urls := []string{"https://a.io", "https://b.io/pricing", "https://c.io"}
	report := newTestEngine(nullCompleter(), okFetcher()).CompetitorAnalysis(context.Background(), urls, []string{"crm"})

	require.Len(t, report, 3)
	for _, u := range urls {
		insight, ok := report[u]
		require.True(t, ok, u)
		assert.Equal(t, dm.Unavailable, insight.QuickSummary)
		assert.Len(t, insight.Sections, len(section.DefaultLabels))
	}
}
