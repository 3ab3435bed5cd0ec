package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/config"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/logger"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
)

const (
	// Temperature 固定采样温度
	Temperature float32 = 0.7
	// MaxTokens 固定输出 token 上限
	MaxTokens = 1000
)

// Completer 单轮补全。第二个返回值为 false 表示分析不可用，调用方不应再追究底层错误。
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, bool)
}

// Client 基于 eino ChatModel 的补全客户端，每个进程一个实例
type Client struct {
	chatModel model.BaseChatModel
	modelName string
}

var _ Completer = (*Client)(nil)

// NewClient 根据配置创建 OpenAI 兼容的补全客户端
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	temperature := Temperature
	maxTokens := MaxTokens

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewClientWithModel(chatModel, cfg.Model), nil
}

// NewClientWithModel 使用已有的 ChatModel 创建客户端
func NewClientWithModel(cm model.BaseChatModel, modelName string) *Client {
	return &Client{chatModel: cm, modelName: modelName}
}

// Complete 以单条 user 消息调用模型，返回首个回复的文本。
// 任何错误只记录日志并转换为 ("", false)，不重试。
func (c *Client) Complete(ctx context.Context, prompt string) (string, bool) {
	messages := []*schema.Message{schema.UserMessage(prompt)}

	resp, err := c.chatModel.Generate(ctx, messages,
		model.WithTemperature(Temperature),
		model.WithMaxTokens(MaxTokens),
	)
	if err != nil {
		logger.Log.Errorf("获取补全失败 [%s]: %v", c.modelName, err)
		return "", false
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		logger.Log.Warnf("模型返回空内容 [%s]", c.modelName)
		return "", false
	}
	return resp.Content, true
}

// OrNone 将不可用的补全替换为占位符 None
func OrNone(text string, ok bool) string {
	if !ok {
		return dm.Unavailable
	}
	return text
}
