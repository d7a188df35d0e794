// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据存储连接的配置。
type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig 存储托管 Postgres（Supabase）的连接配置。
// DSN 中包含 service-role 凭证，属于机密，通常通过环境变量注入。
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig 存储验证托管认证服务签发的 token 所需的配置。
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// LLMConfig 存储外部补全 API 相关的配置。
type LLMConfig struct {
	APIKey        string              `mapstructure:"api_key"`
	BaseURL       string              `mapstructure:"base_url"`
	DefaultModel  string              `mapstructure:"default_model"`
	TitleModel    string              `mapstructure:"title_model"`
	AllowedModels []string            `mapstructure:"allowed_models"`
	Generation    LLMGenerationConfig `mapstructure:"generation"`
	Retry         LLMRetryConfig      `mapstructure:"retry"`
}

// LLMGenerationConfig 配置调用方未指定时使用的生成参数。
type LLMGenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// LLMRetryConfig 配置限流/瞬时故障的重试行为。
type LLMRetryConfig struct {
	MaxAttempts      int `mapstructure:"max_attempts"`
	InitialBackoffMS int `mapstructure:"initial_backoff_ms"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
// 机密项（数据库 DSN、补全 API Key、JWT secret）允许通过环境变量覆盖，
// 避免出现在配置文件里。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量优先于配置文件中的同名键
	_ = viper.BindEnv("database.postgres.dsn", "DATABASE_DSN")
	_ = viper.BindEnv("llm.api_key", "LLM_API_KEY")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}

	applyDefaults(&Conf)
}

// applyDefaults 为未配置的可选项填充默认值。
// 模型与生成参数的默认值对齐原移动端所依赖的行为。
func applyDefaults(c *Config) {
	if c.LLM.DefaultModel == "" {
		c.LLM.DefaultModel = "gpt-4"
	}
	if c.LLM.TitleModel == "" {
		c.LLM.TitleModel = "gpt-3.5-turbo"
	}
	if len(c.LLM.AllowedModels) == 0 {
		c.LLM.AllowedModels = []string{"gpt-4", "gpt-4-turbo", "gpt-3.5-turbo"}
	}
	if c.LLM.Generation.Temperature == 0 {
		c.LLM.Generation.Temperature = 0.7
	}
	if c.LLM.Generation.MaxTokens == 0 {
		c.LLM.Generation.MaxTokens = 1000
	}
	if c.LLM.Retry.MaxAttempts == 0 {
		c.LLM.Retry.MaxAttempts = 3
	}
	if c.LLM.Retry.InitialBackoffMS == 0 {
		c.LLM.Retry.InitialBackoffMS = 500
	}
}

// Validate 检查运行所必需的机密项是否齐备。
// 任一缺失都必须在触碰网络之前让启动失败。
func (c *Config) Validate() error {
	if c.Database.Postgres.DSN == "" {
		return fmt.Errorf("database.postgres.dsn 未配置（可通过 DATABASE_DSN 注入）")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key 未配置（可通过 LLM_API_KEY 注入）")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url 未配置")
	}
	return nil
}
