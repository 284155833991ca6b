package xmulticore

import "log/slog"

// Option 定义 Pool 可选配置函数类型。
type Option func(*Pool)

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithWorkerInit 设置 worker 启动钩子。
// 每个 worker 在处理首个令牌前以自己的编号调用一次，
// 典型用途是独立播种 worker 私有的随机源。
func WithWorkerInit(fn func(workerID int)) Option {
	return func(p *Pool) {
		p.workerInit = fn
	}
}
