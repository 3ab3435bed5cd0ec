package factory

import (
	"fmt"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/config"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/search"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/searxng"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/tavily"
)

// NewSearcher 根据配置创建搜索实例。
// 未配置任何搜索源时返回 (nil, nil)，调用方跳过检索。
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		switch {
		case cfg.Search.Tavily.APIKey != "":
			provider = "tavily"
		case cfg.Search.SearXNG.BaseURL != "":
			provider = "searxng"
		default:
			return nil, nil
		}
	}

	switch provider {
	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey), nil

	case "searxng":
		if cfg.Search.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout), nil

	case "none":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
