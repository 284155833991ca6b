package xconf

import (
	"fmt"
	"time"
)

// Config 采样引擎的完整配置。
// 各节分别对应日志、多核后端、批量调度器与 Redis 执行器。
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Multicore MulticoreConfig `koanf:"multicore"`
	Batch     BatchConfig     `koanf:"batch"`
	Redis     RedisConfig     `koanf:"redis"`
}

// LogConfig 日志配置。
type LogConfig struct {
	// Level 日志级别：debug/info/warn/error。
	Level string `koanf:"level"`

	// Format 输出格式：json 或 text。
	Format string `koanf:"format"`
}

// MulticoreConfig 多核后端配置。
type MulticoreConfig struct {
	// Workers 工作协程数，0 表示取 CPU 核数。
	Workers int `koanf:"workers"`
}

// BatchConfig 批量调度器配置。
type BatchConfig struct {
	// BatchSize 每个批次包含的评估作业数。
	BatchSize int `koanf:"batch_size"`

	// MaxJobs 在途批次数上限。
	MaxJobs int `koanf:"max_jobs"`

	// PollInterval 无进展时的轮询间隔。
	PollInterval time.Duration `koanf:"poll_interval"`

	// EvalName 命名评估函数；为空表示进程内闭包路径。
	EvalName string `koanf:"eval_name"`
}

// RedisConfig Redis 执行器配置。
type RedisConfig struct {
	// Addr Redis 地址，host:port。
	Addr string `koanf:"addr"`

	// Password 认证口令，可为空。
	Password string `koanf:"password"`

	// DB 逻辑库编号。
	DB int `koanf:"db"`

	// Cores 声明的远端评估容量。
	Cores int `koanf:"cores"`

	// KeyPrefix 所有键的前缀。
	KeyPrefix string `koanf:"key_prefix"`

	// ResultTTL 结果键的存活时间。
	ResultTTL time.Duration `koanf:"result_ttl"`
}

// Default 返回各字段的默认值。
// Load 以此为基底，文件中出现的字段覆盖对应默认值。
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Multicore: MulticoreConfig{
			Workers: 0,
		},
		Batch: BatchConfig{
			BatchSize:    1,
			MaxJobs:      200,
			PollInterval: time.Millisecond,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			Cores:     1,
			KeyPrefix: "abckit:exec:",
			ResultTTL: time.Hour,
		},
	}
}

// Validate 对配置做整体校验。
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Multicore.Workers < 0 {
		return fmt.Errorf("%w: multicore.workers %d", ErrInvalidConfig, c.Multicore.Workers)
	}
	if c.Batch.BatchSize < 1 {
		return fmt.Errorf("%w: batch.batch_size %d", ErrInvalidConfig, c.Batch.BatchSize)
	}
	if c.Batch.MaxJobs < 1 {
		return fmt.Errorf("%w: batch.max_jobs %d", ErrInvalidConfig, c.Batch.MaxJobs)
	}
	if c.Batch.PollInterval <= 0 {
		return fmt.Errorf("%w: batch.poll_interval %s", ErrInvalidConfig, c.Batch.PollInterval)
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is empty", ErrInvalidConfig)
	}
	if c.Redis.Cores < 1 {
		return fmt.Errorf("%w: redis.cores %d", ErrInvalidConfig, c.Redis.Cores)
	}
	if c.Redis.ResultTTL <= 0 {
		return fmt.Errorf("%w: redis.result_ttl %s", ErrInvalidConfig, c.Redis.ResultTTL)
	}
	return nil
}
