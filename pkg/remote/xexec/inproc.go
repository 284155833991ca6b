package xexec

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/omeyang/abckit/pkg/sampling/xsampler"
)

// Inproc 进程内执行器。
// 以信号量限制并发批次数；支持闭包与命名两条传输路径，
// 用于测试与单机批量采样。
type Inproc struct {
	cores    int
	sem      chan struct{}
	registry *Registry
	logger   *slog.Logger
}

// InprocOption 定义 Inproc 可选配置函数类型。
type InprocOption func(*Inproc)

// WithRegistry 设置命名路径使用的注册表。
// 默认使用包级默认注册表。传入 nil 将被忽略。
func WithRegistry(r *Registry) InprocOption {
	return func(e *Inproc) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) InprocOption {
	return func(e *Inproc) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewInproc 创建进程内执行器。cores 为可并发执行的批次数上限。
func NewInproc(cores int, opts ...InprocOption) (*Inproc, error) {
	if cores <= 0 {
		return nil, ErrInvalidCores
	}

	e := &Inproc{
		cores:    cores,
		sem:      make(chan struct{}, cores),
		registry: defaultRegistry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e, nil
}

// Cores 返回可并发执行的批次数上限。
func (e *Inproc) Cores() int {
	return e.cores
}

// Submit 提交一个任务，立即返回句柄，批次在后台执行。
func (e *Inproc) Submit(ctx context.Context, task Task) (Handle, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	// 命名路径优先；进程内执行器同样接受闭包路径
	eval := task.Eval
	if task.EvalName != "" {
		fn, ok := e.registry.Lookup(task.EvalName)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEval, task.EvalName)
		}
		eval = fn
	}

	h := &inprocHandle{done: make(chan struct{})}
	go e.run(h, task, eval)
	return h, nil
}

// run 执行一个批次。
func (e *Inproc) run(h *inprocHandle, task Task, eval xsampler.EvalFunc) {
	e.sem <- struct{}{}
	defer func() { <-e.sem }()

	// 取消只在开始执行前生效；一旦开始，批次总是跑完
	if h.cancelled.Load() {
		h.complete(nil, ErrCancelled)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("inproc batch panic recovered", slog.Any("panic", r))
			h.complete(nil, fmt.Errorf("xexec: batch panicked: %v", r))
		}
	}()

	results := make([]Evaluated, 0, len(task.Params))
	for i, param := range task.Params {
		particle, err := eval(param)
		if err != nil {
			h.complete(nil, err)
			return
		}
		results = append(results, Evaluated{
			JobID:    task.JobIDs[i],
			Accepted: particle.Accepted,
			Particle: particle,
		})
	}
	h.complete(results, nil)
}

// inprocHandle 实现 Handle 接口。
type inprocHandle struct {
	done      chan struct{}
	completed atomic.Bool
	cancelled atomic.Bool
	results   []Evaluated
	err       error
}

// complete 写入结果并关闭 done。results/err 的写入先于 close，
// 读侧通过 done 建立 happens-before。
func (h *inprocHandle) complete(results []Evaluated, err error) {
	if h.completed.Swap(true) {
		return
	}
	h.results = results
	h.err = err
	close(h.done)
}

// Done 报告任务是否已完成。
func (h *inprocHandle) Done() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Result 返回批内全部评估结果，未完成时阻塞。
func (h *inprocHandle) Result(ctx context.Context) ([]Evaluated, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	select {
	case <-h.done:
		return h.results, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel 标记取消。已完成或已开始执行的任务不受影响。
func (h *inprocHandle) Cancel(_ context.Context) error {
	h.cancelled.Store(true)
	return nil
}
