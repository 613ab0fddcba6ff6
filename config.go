package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"wupin-golang/ipa"
)

// Config 程序配置，优先级：命令行 > ENV > YAML > 默认值
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Converter ConverterConfig `yaml:"converter"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// DataConfig 词典数据位置
type DataConfig struct {
	Dir string `yaml:"dir" env:"WU_PINYIN_DATA" env-default:"data"`
}

// ConverterConfig 转换参数
type ConverterConfig struct {
	MaxWordLen int    `yaml:"max_word_len" env:"WU_PINYIN_MAX_WORD_LEN" env-default:"15"`
	Tone       string `yaml:"tone"         env:"WU_PINYIN_TONE"         env-default:"sandhi"`
}

// ServerConfig HTTP 服务
type ServerConfig struct {
	Port         int           `yaml:"port"          env:"WU_PINYIN_PORT"          env-default:"18484"`
	CacheTTL     time.Duration `yaml:"cache_ttl"     env:"WU_PINYIN_CACHE_TTL"     env-default:"10m"`
	CacheCleanup time.Duration `yaml:"cache_cleanup" env:"WU_PINYIN_CACHE_CLEANUP" env-default:"30m"`
}

// LogConfig 日志
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// LoadConfig 读取 YAML 和环境变量。path 为空时依次尝试 CONFIG_PATH 和 ./config.yaml；
// 显式指定的文件不存在时报错，默认文件不存在时只用 ENV 和默认值。
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if !explicit {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	var errs []error
	if c.Data.Dir == "" {
		errs = append(errs, errors.New("data.dir is required"))
	}
	if c.Converter.MaxWordLen < 1 {
		errs = append(errs, fmt.Errorf("converter.max_word_len must be >= 1, got %d", c.Converter.MaxWordLen))
	}
	if _, err := ipa.ParseToneMode(c.Converter.Tone); err != nil {
		errs = append(errs, fmt.Errorf("converter.tone: %w", err))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.CacheTTL < 0 {
		errs = append(errs, errors.New("server.cache_ttl must not be negative"))
	}
	return errors.Join(errs...)
}
