package xbatch

import (
	"log/slog"
	"time"
)

// 调度默认值。
const (
	// DefaultBatchSize 默认批大小。批用于摊薄远程提交开销，
	// 评估代价高时保持 1 即可
	DefaultBatchSize = 1

	// DefaultMaxJobs 默认在途批次并发上限
	DefaultMaxJobs = 200

	// DefaultPollInterval 默认轮询间隔
	DefaultPollInterval = time.Millisecond
)

// Option 定义 Scheduler 可选配置函数类型。
type Option func(*Scheduler)

// WithBatchSize 设置批大小：每个批次抽取并提交的参数个数。
func WithBatchSize(size int) Option {
	return func(s *Scheduler) {
		s.batchSize = size
	}
}

// WithMaxJobs 设置在途批次并发上限。
// 准入控制取它与 Client.Cores() 的较小值；这是本后端唯一的
// 背压机制，没有单独的队列深度限制。
func WithMaxJobs(maxJobs int) Option {
	return func(s *Scheduler) {
		s.maxJobs = maxJobs
	}
}

// WithPollInterval 设置一轮空转后的轮询间隔。
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.pollInterval = d
	}
}

// WithEvalName 启用命名传输路径：任务只携带评估函数名，
// 由 worker 侧从注册表解析。未设置时走闭包路径，任务直接携带
// Options.SimulEvalOne（仅进程内执行器可承载）。
func WithEvalName(name string) Option {
	return func(s *Scheduler) {
		s.evalName = name
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}
