package engine

import (
	"context"
	"fmt"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/logger"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/prompt"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/search"
)

const previewLen = 100

// ProductRecommendations 基于客户数据生成产品推荐
func (e *Engine) ProductRecommendations(ctx context.Context, customer map[string]any) dm.ProductRecommendation {
	return dm.ProductRecommendation{
		CustomerID:      customerID(customer),
		Recommendations: e.complete(ctx, prompt.ProductRecommendation(customer), nil),
	}
}

// SentimentAnalysis 检索品牌提及后分析舆情，timeframe 形如 past_month
func (e *Engine) SentimentAnalysis(ctx context.Context, brand, timeframe string) dm.SentimentReport {
	if timeframe == "" {
		timeframe = "past_month"
	}
	logger.Log.Infof("正在分析品牌舆情: %s (%s)", brand, timeframe)

	mentions := e.search(ctx, &search.Request{
		Query:      fmt.Sprintf("%s reviews OR mentions OR feedback site:twitter.com OR site:linkedin.com", brand),
		Topic:      "news",
		MaxResults: 20,
		TimeRange:  search.TimeRangeFromTimeframe(timeframe),
	})

	return dm.SentimentReport{
		Brand:     brand,
		Timeframe: timeframe,
		Analysis:  e.complete(ctx, prompt.Sentiment(brand, mentions), nil),
		Mentions:  mentions,
	}
}

// PredictPerformance 预测内容在平台上的表现
func (e *Engine) PredictPerformance(ctx context.Context, content, platform string) dm.PerformancePrediction {
	return dm.PerformancePrediction{
		Platform:       platform,
		ContentPreview: prompt.Truncate(content, previewLen) + "...",
		Prediction:     e.complete(ctx, prompt.PerformancePrediction(content, platform), nil),
	}
}

// PriceMonitor 抓取主产品与竞品价格并分析定价策略
func (e *Engine) PriceMonitor(ctx context.Context, productURL string, competitors []string) dm.PriceReport {
	prices := make(map[string]string, len(competitors)+1)
	prices["main_product"] = e.fetcher.Price(ctx, productURL)
	for _, c := range competitors {
		prices[c] = e.fetcher.Price(ctx, c)
	}

	return dm.PriceReport{
		ProductURL: productURL,
		Prices:     prices,
		Analysis:   e.complete(ctx, prompt.PriceAnalysis(prices), nil),
	}
}

// CustomerJourney 分析客户旅程触点
func (e *Engine) CustomerJourney(ctx context.Context, customer map[string]any) dm.JourneyMap {
	return dm.JourneyMap{
		CustomerID: customerID(customer),
		JourneyMap: e.complete(ctx, prompt.CustomerJourney(customer), nil),
	}
}

func customerID(customer map[string]any) string {
	if v, ok := customer["customer_id"]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
