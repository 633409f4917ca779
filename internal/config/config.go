package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Groq      GroqConfig      `mapstructure:"groq"`
	Engine    EngineConfig    `mapstructure:"engine"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

// GroqConfig Groq聊天补全服务配置（OpenAI兼容接口）
type GroqConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// EngineConfig 表情识别引擎配置
type EngineConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig 冷却配置，cooldown为同一客户端同一路由两次成功访问的最小间隔
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Cooldown time.Duration `mapstructure:"cooldown"`
}

var cfg *Config

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MINDEASE")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// 配置文件优先，如果配置文件中没有设置，则使用环境变量
	if cfg.Groq.APIKey == "" {
		if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
			cfg.Groq.APIKey = apiKey
		}
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
			for _, origin := range strings.Split(raw, ",") {
				if origin = strings.TrimSpace(origin); origin != "" {
					cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
				}
			}
		}
	}

	applyDefaults(cfg)

	return cfg, nil
}

func Get() *Config {
	return cfg
}

func applyDefaults(c *Config) {
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Groq.Model == "" {
		c.Groq.Model = "llama3-8b-8192"
	}
	if c.Groq.Temperature == 0 {
		c.Groq.Temperature = 0.7
	}
	if c.Groq.Timeout == 0 {
		c.Groq.Timeout = 30 * time.Second
	}
	if c.Engine.Timeout == 0 {
		c.Engine.Timeout = 30 * time.Second
	}
	if c.RateLimit.Cooldown == 0 {
		c.RateLimit.Cooldown = 300 * time.Second
	}
}
