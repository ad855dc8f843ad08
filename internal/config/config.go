package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	chatmodel "github.com/zhouzirui/simplechat/internal/model/chat"
)

// DefaultQAModel 是问答表单默认使用的模型。
const DefaultQAModel = "llama3.2"

// Config 聚合两个程序的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Chat   ChatConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Chat: loadChatConfig()}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig 描述问答表单使用的补全端点。
type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout in seconds; nil leaves the client default.
	Timeout *int
}

// Enabled 表示模型与凭证均已提供。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && c.APIKey != ""
}

// NewChatModel 使用配置创建一个模型实例。采样参数保持服务端默认值。
func (c AIConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("qa model or credential missing")
	}

	// 失败的问题只发送一次，关闭客户端默认的重试。
	noRetry := 0
	cfg := &ark.ChatModelConfig{
		BaseURL:    c.BaseURL,
		APIKey:     c.APIKey,
		Model:      c.Model,
		RetryTimes: &noRetry,
	}
	if c.Timeout != nil {
		timeout := time.Duration(*c.Timeout) * time.Second
		cfg.Timeout = &timeout
	}

	chatModel, err := ark.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create ark chat model: %w", err)
	}
	return chatModel, nil
}

func loadAIConfig() (AIConfig, error) {
	timeout, err := parseOptionalIntEnv("QA_TIMEOUT")
	if err != nil {
		return AIConfig{}, err
	}
	if timeout != nil && *timeout < 1 {
		return AIConfig{}, fmt.Errorf("invalid QA_TIMEOUT value %d: must be positive", *timeout)
	}

	return AIConfig{
		APIKey:  getEnvOrDefault("OLLAMA_API_KEY", chatmodel.DefaultAPIKey),
		Model:   getEnvOrDefault("QA_MODEL", DefaultQAModel),
		BaseURL: getEnvOrDefault("OLLAMA_BASE_URL", chatmodel.DefaultBaseURL),
		Timeout: timeout,
	}, nil
}

// ChatConfig 描述命令行聊天会话的连接参数。
type ChatConfig struct {
	Model   string
	BaseURL string
	APIKey  string
}

// SessionConfig 转换为会话使用的不可变配置，空字段取默认值。
func (c ChatConfig) SessionConfig() chatmodel.SessionConfig {
	return chatmodel.SessionConfig{
		Model:   c.Model,
		BaseURL: c.BaseURL,
		APIKey:  c.APIKey,
	}.WithDefaults()
}

func loadChatConfig() ChatConfig {
	return ChatConfig{
		Model:   strings.TrimSpace(os.Getenv("CHAT_MODEL")),
		BaseURL: getEnvOrDefault("OLLAMA_BASE_URL", chatmodel.DefaultBaseURL),
		APIKey:  getEnvOrDefault("OLLAMA_API_KEY", chatmodel.DefaultAPIKey),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
