package xsampler

import (
	"context"
	"fmt"
	"log/slog"
)

// SingleCore 进程内单核基准采样器。
// 逐个抽取并评估，直至收集到 N 个接受粒子。
// worker 池后端按 token 复用它执行 N=1 的子轮次。
type SingleCore struct {
	logger *slog.Logger
}

// SingleCoreOption 定义 SingleCore 可选配置函数类型。
type SingleCoreOption func(*SingleCore)

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) SingleCoreOption {
	return func(s *SingleCore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSingleCore 创建单核基准采样器。
func NewSingleCore(opts ...SingleCoreOption) *SingleCore {
	s := &SingleCore{logger: slog.Default()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// SampleUntilNAccepted 实现 Sampler 契约。
func (s *SingleCore) SampleUntilNAccepted(ctx context.Context, opts Options) (*Result, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sample := opts.Factory().New()
	evaluations := 0

	for sample.NAccepted() < opts.N {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		theta := opts.SampleOne()
		particle, err := opts.SimulEvalOne(theta)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
		}
		evaluations++
		sample.Append(particle)
	}

	s.logger.Debug("single-core round finished",
		slog.Int("n", opts.N),
		slog.Int("evaluations", evaluations),
	)

	return &Result{Sample: sample, Evaluations: evaluations}, nil
}
