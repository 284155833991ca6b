package xmulticore

import (
	"context"
	"log/slog"
	"sync"

	"github.com/omeyang/abckit/pkg/sampling/xsampler"
)

// token 输入通道上的令牌：工作令牌或终止令牌。
type token struct {
	stop bool
}

// feed 喂料单元：先写入 n 个工作令牌，再写入每个 worker 一个的
// 终止令牌。通道必须有足够缓冲（n + workers），喂料过程不阻塞。
func feed(ch chan<- token, n, workers int) {
	for range n {
		ch <- token{}
	}
	for range workers {
		ch <- token{stop: true}
	}
}

// workerResult 单个令牌的执行结果。
type workerResult struct {
	res *xsampler.Result
	err error
}

// Pool 本地 worker 池采样后端。
// 实例只承载池配置，可跨轮复用；同一实例不应被两轮并发调用。
type Pool struct {
	workers    int
	workerInit func(workerID int)
	logger     *slog.Logger
}

// NewPool 创建 worker 池后端。workers 为配置的 worker 数上限；
// 实际启动数为 min(N, workers)，超过 N 的 worker 在本方案中没有收益。
func NewPool(workers int, opts ...Option) (*Pool, error) {
	if workers < 1 {
		return nil, ErrInvalidWorkers
	}

	p := &Pool{
		workers: workers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p, nil
}

// Workers 返回配置的 worker 数上限。
func (p *Pool) Workers() int {
	return p.workers
}

// SampleUntilNAccepted 实现 Sampler 契约。
func (p *Pool) SampleUntilNAccepted(ctx context.Context, opts xsampler.Options) (*xsampler.Result, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	n := opts.N
	workers := min(n, p.workers)
	p.logger.Debug("start sampling on worker pool",
		slog.Int("workers", workers),
		slog.Int("requested", p.workers),
		slog.Int("n", n),
	)

	// 两条 FIFO 通道：缓冲保证喂料与结果交付都不阻塞
	feedCh := make(chan token, n+workers)
	resultCh := make(chan workerResult, n)

	go feed(feedCh, n, workers)

	var wg sync.WaitGroup
	for id := range workers {
		wg.Add(1)
		go p.worker(ctx, id, &wg, feedCh, resultCh, opts)
	}

	// workersExited 用于协调者在每次接收前的存活性检查
	workersExited := make(chan struct{})
	go func() {
		wg.Wait()
		close(workersExited)
	}()

	collected := make([]workerResult, 0, n)
	var firstErr error

receive:
	for len(collected) < n {
		select {
		case r := <-resultCh:
			if r.err != nil && firstErr == nil {
				firstErr = r.err
			}
			collected = append(collected, r)
		case <-workersExited:
			// 所有 worker 已退出：先排空缓冲中已交付的结果，
			// 仍然不足则说明有 worker 未交付其结果就死亡了
			for len(collected) < n {
				select {
				case r := <-resultCh:
					if r.err != nil && firstErr == nil {
						firstErr = r.err
					}
					collected = append(collected, r)
				default:
					if firstErr != nil {
						return nil, firstErr
					}
					return nil, ErrWorkerDied
				}
			}
			break receive
		}
	}

	// 已出队的令牌总是执行到底；等待所有 worker 消费终止令牌后退出
	<-workersExited

	if firstErr != nil {
		return nil, firstErr
	}

	// 汇总：每 worker 评估计数求和，单粒子 Sample 逐个合并
	merged := opts.Factory().New()
	evaluations := 0
	for _, r := range collected {
		merged = merged.Merge(r.res.Sample)
		evaluations += r.res.Evaluations
	}

	p.logger.Debug("worker pool round finished",
		slog.Int("n", n),
		slog.Int("evaluations", evaluations),
	)

	return &xsampler.Result{Sample: merged, Evaluations: evaluations}, nil
}

// worker 从输入通道取令牌，每个令牌执行一次 N=1 的单核子轮次。
// 评估代码 panic 会导致 worker 不交付结果直接退出（worker 死亡），
// 由协调者的存活性检查兜底。
func (p *Pool) worker(ctx context.Context, id int, wg *sync.WaitGroup, feedCh <-chan token, resultCh chan<- workerResult, opts xsampler.Options) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker died",
				slog.Int("worker_id", id),
				slog.Any("panic", r),
			)
		}
	}()

	if p.workerInit != nil {
		p.workerInit(id)
	}

	single := xsampler.NewSingleCore(xsampler.WithLogger(p.logger))
	workerOpts := opts
	workerOpts.N = 1

	for tok := range feedCh {
		if tok.stop {
			return
		}
		res, err := single.SampleUntilNAccepted(ctx, workerOpts)
		resultCh <- workerResult{res: res, err: err}
	}
}
