package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "configs/config.yaml"

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr           string      `yaml:"listen_addr"`
	Port                 string      `yaml:"port"`
	DatabaseDriver       string      `yaml:"database_driver"`
	DatabasePath         string      `yaml:"database_path"`
	DatabaseDSN          string      `yaml:"database_dsn"`
	SessionSecret        string      `yaml:"session_secret"`
	GinMode              string      `yaml:"gin_mode"`
	SiteName             string      `yaml:"site_name"`
	SuperRootUserName    string      `yaml:"super_root_user_name"`
	SuperRootPassword    string      `yaml:"super_root_password"`
	CommentRatePerMinute int         `yaml:"comment_rate_per_minute"`
	Redis                RedisConfig `yaml:"redis"`
	Log                  LogConfig   `yaml:"log"`
}

// RedisConfig 描述共享缓存。Addr 为空时使用进程内缓存。
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig 控制 logrus 输出级别与文件滚动。
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

// Load 先读取可选的 YAML 文件，再用环境变量覆盖，最后为缺失项补齐默认值。
func Load() (AppConfig, error) {
	var cfg AppConfig

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg.overrideFromEnv()
	cfg.setDefaults()

	return cfg, nil
}

func (c *AppConfig) overrideFromEnv() {
	setString(&c.Port, "PORT")
	setString(&c.ListenAddr, "LISTEN_ADDR")
	setString(&c.DatabaseDriver, "DATABASE_DRIVER")
	setString(&c.DatabasePath, "DATABASE_PATH")
	setString(&c.DatabaseDSN, "DATABASE_DSN")
	setString(&c.SessionSecret, "SESSION_SECRET")
	setString(&c.GinMode, "GIN_MODE")
	setString(&c.SiteName, "SITE_NAME")
	setString(&c.SuperRootUserName, "SUPER_ROOT_USER_NAME")
	setString(&c.SuperRootPassword, "SUPER_ROOT_PASSWORD")
	setInt(&c.CommentRatePerMinute, "COMMENT_RATE_PER_MINUTE")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.File, "LOG_FILE")
}

func (c *AppConfig) setDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = fmt.Sprintf(":%s", c.Port)
	}

	c.DatabaseDriver = strings.ToLower(c.DatabaseDriver)
	if c.DatabaseDriver == "" {
		c.DatabaseDriver = "sqlite"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "multiblog.db"
	}

	if c.SessionSecret == "" {
		c.SessionSecret = "multiblog-dev-secret"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.SiteName == "" {
		c.SiteName = "Multi-person Blog"
	}
	if c.CommentRatePerMinute <= 0 {
		c.CommentRatePerMinute = 6
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = 100
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = 30
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 7
	}
}

func setString(dst *string, key string) {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		*dst = val
	}
}

func setInt(dst *int, key string) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return
	}
	if n, err := strconv.Atoi(val); err == nil {
		*dst = n
	}
}
