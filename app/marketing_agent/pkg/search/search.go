package search

import "context"

// Searcher 定义通用的搜索接口，用于竞品排名与品牌提及检索
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
	TimeRange  string // day / week / month / year，空表示不限
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date,omitempty"`
}

// TimeRangeFromTimeframe 将 past_month 这类时间窗口映射为搜索时间范围
func TimeRangeFromTimeframe(timeframe string) string {
	switch timeframe {
	case "past_day":
		return "day"
	case "past_week":
		return "week"
	case "past_month":
		return "month"
	case "past_year":
		return "year"
	default:
		return ""
	}
}
