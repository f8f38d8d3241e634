package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	MySQL      MySQLConfig      `mapstructure:"mysql"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Lmstfy     LmstfyConfig     `mapstructure:"lmstfy"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Lmstfy 配置
// TTL 消息存活时间（秒），Tries 重投递预算（耗尽后进入死信队列）
type LmstfyConfig struct {
	Host      string `mapstructure:"host"`
	Namespace string `mapstructure:"namespace"`
	Queue     string `mapstructure:"queue"`
	Token     string `mapstructure:"token"`
	TTL       uint32 `mapstructure:"ttl"`
	Tries     uint16 `mapstructure:"tries"`
}

// StorageConfig 对象存储配置（MinIO）
type StorageConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	AccessKey string        `mapstructure:"access_key"`
	SecretKey string        `mapstructure:"secret_key"`
	Bucket    string        `mapstructure:"bucket"`
	UseSSL    bool          `mapstructure:"use_ssl"`
	GrantTTL  time.Duration `mapstructure:"grant_ttl"` // 预签名凭证有效期
}

// AuthConfig 认证配置（仅验签，令牌由外部签发）
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// ReconcilerConfig 补偿扫描配置
type ReconcilerConfig struct {
	Interval       time.Duration `mapstructure:"interval"`        // 扫描间隔
	StaleThreshold time.Duration `mapstructure:"stale_threshold"` // PENDING 滞留判定阈值
	BatchSize      int           `mapstructure:"batch_size"`      // 单次扫描上限
}

// Load 从配置文件加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

// applyDefaults 填充缺省值
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Lmstfy.TTL == 0 {
		cfg.Lmstfy.TTL = 3600
	}
	if cfg.Lmstfy.Tries == 0 {
		cfg.Lmstfy.Tries = 3
	}
	if cfg.Storage.GrantTTL == 0 {
		cfg.Storage.GrantTTL = 300 * time.Second
	}
	if cfg.Reconciler.Interval == 0 {
		cfg.Reconciler.Interval = time.Minute
	}
	if cfg.Reconciler.StaleThreshold == 0 {
		cfg.Reconciler.StaleThreshold = 5 * time.Minute
	}
	if cfg.Reconciler.BatchSize == 0 {
		cfg.Reconciler.BatchSize = 100
	}
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql dsn is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy host is required")
	}
	if c.Lmstfy.Queue == "" {
		return fmt.Errorf("lmstfy queue is required")
	}
	if c.Storage.Endpoint == "" {
		return fmt.Errorf("storage endpoint is required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth jwt_secret is required")
	}
	return nil
}
