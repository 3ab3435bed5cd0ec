package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv 补全接口凭证所在的环境变量
const APIKeyEnv = "GROQ_API_KEY"

const (
	tavilyKeyEnv   = "TAVILY_API_KEY"
	searxngURLEnv  = "SEARXNG_BASE_URL"
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "mistral-saba-24b"
	defaultAddr    = "0.0.0.0:8000"
	defaultTimeout = "300s"
)

// Config 项目配置结构体
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Search SearchConfig `yaml:"search"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// SearchConfig 搜索相关配置，未配置时竞品排名与舆情检索跳过
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConfigurationError 启动配置缺失，进程不应继续
type ConfigurationError struct {
	Variable string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: missing required environment variable %s", e.Variable)
}

// LoadConfig 从指定路径加载配置。
// 路径为空或文件不存在时使用默认值；随后读取 .env 与环境变量覆盖凭证。
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	// .env 不存在不是错误
	_ = godotenv.Load()

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// Validate 校验必需配置，缺少凭证时返回 *ConfigurationError
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return &ConfigurationError{Variable: APIKeyEnv}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(APIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(tavilyKeyEnv); v != "" {
		c.Search.Tavily.APIKey = v
	}
	if v := os.Getenv(searxngURLEnv); v != "" {
		c.Search.SearXNG.BaseURL = v
	}
}

func (c *Config) applyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.Timeout == "" {
		c.Server.Timeout = defaultTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
