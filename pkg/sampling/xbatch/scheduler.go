package xbatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/omeyang/abckit/internal/seqbuf"
	"github.com/omeyang/abckit/pkg/remote/xexec"
	"github.com/omeyang/abckit/pkg/sampling/xsample"
	"github.com/omeyang/abckit/pkg/sampling/xsampler"
)

// Scheduler 远程批量采样后端。
// 实例只承载调度配置与客户端引用，可跨轮复用；
// 同一实例不应被两轮并发调用。
type Scheduler struct {
	client       xexec.Client
	batchSize    int
	maxJobs      int
	pollInterval time.Duration
	evalName     string
	logger       *slog.Logger
}

// NewScheduler 创建远程批量调度器。
func NewScheduler(client xexec.Client, opts ...Option) (*Scheduler, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	s := &Scheduler{
		client:       client,
		batchSize:    DefaultBatchSize,
		maxJobs:      DefaultMaxJobs,
		pollInterval: DefaultPollInterval,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.batchSize < 1 {
		return nil, ErrInvalidBatchSize
	}
	if s.maxJobs < 1 {
		return nil, ErrInvalidMaxJobs
	}
	if s.pollInterval <= 0 {
		return nil, ErrInvalidPollInterval
	}
	return s, nil
}

// roundState 一轮调度的全部状态。
type roundState struct {
	running     []xexec.Handle               // 在途批次句柄
	unprocessed *seqbuf.Buffer[xexec.Evaluated] // 已完成、尚未按序消费的结果
	consumed    []xexec.Evaluated            // 已按严格提交顺序消费的结果

	acceptedTotal      int   // 任意序接受计数，仅用于准入控制
	acceptedSequential int   // 严格按序消费的接受计数
	nextJobID          int64 // 单调发放计数器（从 1 开始）
	nextValid          int64 // 已按序消费到的作业号，初值低于首个有效号
}

// SampleUntilNAccepted 实现 Sampler 契约。
func (s *Scheduler) SampleUntilNAccepted(ctx context.Context, opts xsampler.Options) (*xsampler.Result, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	st := &roundState{
		unprocessed: seqbuf.New[xexec.Evaluated](),
		nextJobID:   1,
		nextValid:   0,
	}

	for {
		if err := ctx.Err(); err != nil {
			s.cancelAll(ctx, st.running)
			return nil, err
		}

		progressed, err := s.drainFinished(ctx, st)
		if err != nil {
			s.cancelAll(ctx, st.running)
			return nil, err
		}

		s.consumeSequential(st)

		if st.acceptedSequential >= opts.N {
			break
		}

		submitted, err := s.admit(ctx, st, opts)
		if err != nil {
			s.cancelAll(ctx, st.running)
			return nil, err
		}

		// 无任何进展时轮询等待，绝不在单个批次上无限期阻塞
		if !progressed && !submitted {
			select {
			case <-ctx.Done():
				s.cancelAll(ctx, st.running)
				return nil, ctx.Err()
			case <-time.After(s.pollInterval):
			}
		}
	}

	// 取消所有仍在途的批次；已完成但未消费的结果只能被丢弃
	s.cancelAll(ctx, st.running)

	return s.assemble(st, opts), nil
}

// drainFinished 把所有已完成批次排入有序缓冲（第 1 步）。
func (s *Scheduler) drainFinished(ctx context.Context, st *roundState) (bool, error) {
	progressed := false
	active := st.running[:0]
	for i := 0; i < len(st.running); i++ {
		h := st.running[i]
		if !h.Done() {
			active = append(active, h)
			continue
		}
		results, err := h.Result(ctx)
		if err != nil {
			// 其余在途批次留在 running 中，由调用方取消
			st.running = append(active, st.running[i+1:]...)
			return false, fmt.Errorf("%w: %w", ErrBatchFailed, err)
		}
		for _, ev := range results {
			st.unprocessed.Push(ev.JobID, ev)
			if ev.Accepted {
				st.acceptedTotal++
			}
		}
		progressed = true
	}
	st.running = active
	return progressed, nil
}

// consumeSequential 按严格提交顺序消费（第 2 步）：
// 只要缓冲中最小作业号恰好是下一个期望序号就移入已消费列表。
// 这使最终种群顺序与提交顺序一致，与完成顺序无关。
func (s *Scheduler) consumeSequential(st *roundState) {
	for {
		minID, ok := st.unprocessed.MinID()
		if !ok || minID != st.nextValid+1 {
			return
		}
		_, ev, _ := st.unprocessed.PopMin()
		st.consumed = append(st.consumed, ev)
		st.nextValid++
		if ev.Accepted {
			st.acceptedSequential++
		}
	}
}

// admit 准入控制与批次提交（第 4、5 步）。
func (s *Scheduler) admit(ctx context.Context, st *roundState, opts xsampler.Options) (bool, error) {
	cores := s.client.Cores()
	if len(st.running) >= s.maxJobs || len(st.running) >= cores {
		return false, nil
	}
	// 流水线中任何位置已有足够接受结果时不再提交，避免过度提交
	if st.acceptedTotal >= opts.N {
		return false, nil
	}

	submitted := false
	capacity := min(s.maxJobs, cores)
	for len(st.running) < capacity {
		task := xexec.Task{
			JobIDs: make([]int64, 0, s.batchSize),
			Params: make([]xsample.Parameter, 0, s.batchSize),
		}
		for range s.batchSize {
			task.JobIDs = append(task.JobIDs, st.nextJobID)
			task.Params = append(task.Params, opts.SampleOne())
			st.nextJobID++
		}
		if s.evalName != "" {
			task.EvalName = s.evalName
		} else {
			task.Eval = opts.SimulEvalOne
		}

		h, err := s.client.Submit(ctx, task)
		if err != nil {
			// 传输失败在提交时报出
			return submitted, err
		}
		st.running = append(st.running, h)
		submitted = true

		s.logger.Debug("batch submitted",
			slog.Int64("first_job_id", task.JobIDs[0]),
			slog.Int("batch_size", s.batchSize),
			slog.Int("in_flight", len(st.running)),
		)
	}
	return submitted, nil
}

// cancelAll 取消所有仍在途的批次。
func (s *Scheduler) cancelAll(ctx context.Context, running []xexec.Handle) {
	for _, h := range running {
		if err := h.Cancel(ctx); err != nil {
			s.logger.Warn("batch cancel failed", slog.Any("error", err))
		}
	}
}

// assemble 终装配：按作业号递增顺序排空已消费列表，
// 追加到返回的 Sample 直至恰好含 N 个接受粒子。
// 评估计数取最后一个被排空结果的作业号（作业号从 1 起连续发放，
// 恒接受时恰好等于 N）。
func (s *Scheduler) assemble(st *roundState, opts xsampler.Options) *xsampler.Result {
	sample := opts.Factory().New()
	accepted := 0
	var lastID int64
	for _, ev := range st.consumed {
		if accepted >= opts.N {
			break
		}
		sample.Append(ev.Particle)
		lastID = ev.JobID
		if ev.Accepted {
			accepted++
		}
	}

	s.logger.Debug("batch round finished",
		slog.Int("n", opts.N),
		slog.Int64("evaluations", lastID),
		slog.Int64("jobs_issued", st.nextJobID-1),
	)

	return &xsampler.Result{Sample: sample, Evaluations: int(lastID)}
}
