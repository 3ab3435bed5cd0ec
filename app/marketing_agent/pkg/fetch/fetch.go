package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
)

const (
	// Timeout 单次抓取超时
	Timeout = 10 * time.Second

	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxBodyBytes  = 5 << 20
	maxExcerptLen = 500

	// PriceNotFound 页面中没有价格元素
	PriceNotFound = "Price not found"
)

var (
	titleSel = cascadia.MustCompile("title")
	metaSel  = cascadia.MustCompile(`meta[name="description"]`)
	h1Sel    = cascadia.MustCompile("h1")
	priceSel = cascadia.MustCompile("span.price")
)

// ErrFetchFailed 抓取失败的哨兵错误，网络错误、超时与非 2xx 都归入此类
var ErrFetchFailed = errors.New("fetch failed")

// FetchFailedError 携带底层原因的抓取错误
type FetchFailedError struct {
	URL string
	Err error
}

func (e *FetchFailedError) Error() string {
	return fmt.Sprintf("fetch failed [%s]: %v", e.URL, e.Err)
}

func (e *FetchFailedError) Unwrap() error { return e.Err }

// Is 让 errors.Is(err, ErrFetchFailed) 成立
func (e *FetchFailedError) Is(target error) bool { return target == ErrFetchFailed }

// Fetcher 页面抓取器
type Fetcher struct {
	client *http.Client
}

// NewFetcher 创建抓取器，超时固定为 Timeout
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: Timeout}}
}

// Fetch 抓取页面并提取 title、meta description 与所有 h1 文本
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*dm.PageSnapshot, error) {
	body, finalURL, err := f.get(ctx, rawURL, userAgent)
	if err != nil {
		return nil, &FetchFailedError{URL: rawURL, Err: err}
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchFailedError{URL: rawURL, Err: fmt.Errorf("parse html: %w", err)}
	}

	snap := Extract(doc)
	snap.URL = rawURL
	snap.Excerpt = excerpt(body, finalURL)
	return snap, nil
}

// Price 查找 span.price 的文本；失败时返回 "Error: ..." 而非错误
func (f *Fetcher) Price(ctx context.Context, rawURL string) string {
	body, _, err := f.get(ctx, rawURL, "Mozilla/5.0")
	if err != nil {
		return "Error: " + err.Error()
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "Error: " + err.Error()
	}
	node := priceSel.MatchFirst(doc)
	if node == nil {
		return PriceNotFound
	}
	return nodeText(node)
}

// Extract 从已解析的文档中提取 SEO 要素，缺失字段为空字符串或空切片
func Extract(doc *html.Node) *dm.PageSnapshot {
	snap := &dm.PageSnapshot{Headings: []string{}}

	if n := titleSel.MatchFirst(doc); n != nil {
		snap.Title = nodeText(n)
	}
	if n := metaSel.MatchFirst(doc); n != nil {
		snap.MetaDescription = attr(n, "content")
	}
	for _, n := range h1Sel.MatchAll(doc) {
		snap.Headings = append(snap.Headings, strings.TrimSpace(nodeText(n)))
	}
	return snap
}

func (f *Fetcher) get(ctx context.Context, rawURL, ua string) ([]byte, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", ua)

	res, err := f.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read body failed: %w", err)
	}
	return body, res.Request.URL, nil
}

// excerpt 用 readability 提取正文摘要，失败时为空
func excerpt(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(article.Excerpt)
	if text == "" {
		text = strings.Join(strings.Fields(article.TextContent), " ")
	}
	return truncate(text, maxExcerptLen)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
