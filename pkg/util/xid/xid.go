package xid

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sony/sonyflake/v2"
)

var (
	// ErrInvalidConfig 配置参数无效。
	// sonyflake.New 初始化失败（如机器 ID 获取失败）时也包裹为此错误。
	ErrInvalidConfig = errors.New("xid: invalid config")

	// ErrNilGenerator 生成器实例为 nil 或未通过 NewGenerator 创建。
	ErrNilGenerator = errors.New("xid: nil generator (use NewGenerator to create)")

	// ErrGenerate ID 生成失败（时钟回拨或时间分量溢出）。
	ErrGenerate = errors.New("xid: failed to generate id")
)

// Round 一个采样轮次的标识。
type Round struct {
	// ID 63 位时间有序的唯一整数
	ID int64
}

// String 返回十进制字符串形式，用作日志字段和 Redis 键片段。
func (r Round) String() string {
	return strconv.FormatInt(r.ID, 10)
}

// Generator 轮次 ID 生成器，并发安全。
type Generator struct {
	sf *sonyflake.Sonyflake
}

// Option 配置 Generator。
type Option func(*settings)

type settings struct {
	startTime time.Time
	machineID func() (int, error)
}

// WithStartTime 设置 ID 时间分量的纪元起点。
// 默认使用 Sonyflake 的默认纪元；同一部署的所有进程必须一致。
func WithStartTime(t time.Time) Option {
	return func(s *settings) {
		s.startTime = t
	}
}

// WithMachineID 显式指定机器 ID 获取函数。
// 默认从私有 IPv4 地址派生；多网卡或 NAT 环境建议显式指定。
func WithMachineID(fn func() (int, error)) Option {
	return func(s *settings) {
		s.machineID = fn
	}
}

// NewGenerator 创建轮次 ID 生成器。
func NewGenerator(opts ...Option) (*Generator, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	sf, err := sonyflake.New(sonyflake.Settings{
		StartTime: cfg.startTime,
		MachineID: cfg.machineID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Generator{sf: sf}, nil
}

// NextRound 生成下一个轮次 ID。
func (g *Generator) NextRound() (Round, error) {
	if g == nil || g.sf == nil {
		return Round{}, ErrNilGenerator
	}
	id, err := g.sf.NextID()
	if err != nil {
		return Round{}, fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	return Round{ID: id}, nil
}
