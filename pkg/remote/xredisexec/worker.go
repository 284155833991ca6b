package xredisexec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omeyang/abckit/pkg/remote/xexec"
)

// DefaultPopTimeout BRPOP 的单次阻塞超时。
// 较短的超时让 Worker 在 ctx 取消后尽快退出。
const DefaultPopTimeout = time.Second

// Worker 从任务队列取批次、评估并写回结果。
//
// 多个 Worker 进程可以消费同一个队列；BRPOP 保证每个批次
// 恰好被一个 Worker 取走。单个 Worker 内串行评估，并行度
// 通过起多个 Worker 进程获得。
type Worker struct {
	rdb        redis.UniversalClient
	registry   *xexec.Registry
	keys       keySpace
	resultTTL  time.Duration
	popTimeout time.Duration
	init       func()
	logger     *slog.Logger
}

// WorkerOption 配置 Worker。
type WorkerOption func(*Worker)

// WithWorkerKeyPrefix 设置键前缀，必须与 Client 一侧一致。
func WithWorkerKeyPrefix(prefix string) WorkerOption {
	return func(w *Worker) {
		w.keys = keySpace{prefix: prefix}
	}
}

// WithWorkerRegistry 设置评估函数注册表，默认使用包级默认注册表。
func WithWorkerRegistry(r *xexec.Registry) WorkerOption {
	return func(w *Worker) {
		if r != nil {
			w.registry = r
		}
	}
}

// WithWorkerResultTTL 设置结果键存活时间，默认 DefaultResultTTL。
func WithWorkerResultTTL(ttl time.Duration) WorkerOption {
	return func(w *Worker) {
		w.resultTTL = ttl
	}
}

// WithWorkerPopTimeout 设置 BRPOP 单次阻塞超时，默认 DefaultPopTimeout。
func WithWorkerPopTimeout(d time.Duration) WorkerOption {
	return func(w *Worker) {
		w.popTimeout = d
	}
}

// WithWorkerInit 设置 Run 开始前执行一次的初始化钩子。
// 典型用途是为本进程的随机评估播种独立的随机源。
func WithWorkerInit(fn func()) WorkerOption {
	return func(w *Worker) {
		w.init = fn
	}
}

// WithWorkerLogger 设置日志记录器，默认 slog.Default。
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorker 创建队列 Worker。
func NewWorker(rdb redis.UniversalClient, opts ...WorkerOption) (*Worker, error) {
	if rdb == nil {
		return nil, ErrNilRedis
	}
	w := &Worker{
		rdb:        rdb,
		registry:   xexec.DefaultRegistry(),
		keys:       keySpace{prefix: DefaultKeyPrefix},
		resultTTL:  DefaultResultTTL,
		popTimeout: DefaultPopTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run 阻塞消费任务队列直到 ctx 取消。
// ctx 取消是正常的停机路径，返回 nil；传输层错误短暂退避后继续，
// 避免 Redis 抖动杀死 Worker。
func (w *Worker) Run(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	if w.init != nil {
		w.init()
	}
	w.logger.Info("worker started", slog.String("queue", w.keys.queue()))

	for {
		if ctx.Err() != nil {
			w.logger.Info("worker stopped")
			return nil
		}

		vals, err := w.rdb.BRPop(ctx, w.popTimeout, w.keys.queue()).Result()
		switch {
		case errors.Is(err, redis.Nil):
			// 队列为空，继续下一轮阻塞等待
			continue
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			w.logger.Info("worker stopped")
			return nil
		case err != nil:
			w.logger.Warn("queue pop failed", slog.Any("error", err))
			select {
			case <-ctx.Done():
				w.logger.Info("worker stopped")
				return nil
			case <-time.After(w.popTimeout):
			}
			continue
		}

		// BRPOP 返回 [key, value]
		w.handleTask(ctx, []byte(vals[1]))
	}
}

// handleTask 评估一个批次并写回结果。
// 解码失败只能丢弃记日志：没有 task_id 就没有结果键可写。
func (w *Worker) handleTask(ctx context.Context, payload []byte) {
	var env taskEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		w.logger.Error("drop undecodable task", slog.Any("error", err))
		return
	}

	log := w.logger.With(slog.String("task_id", env.TaskID))

	// 已被取消的批次在出队时丢弃
	n, err := w.rdb.Exists(ctx, w.keys.cancel(env.TaskID)).Result()
	if err == nil && n > 0 {
		log.Debug("skip cancelled task")
		return
	}

	result := w.evaluate(env)
	raw, err := json.Marshal(result)
	if err != nil {
		log.Error("encode result failed", slog.Any("error", err))
		return
	}
	if err := w.rdb.Set(ctx, w.keys.result(env.TaskID), raw, w.resultTTL).Err(); err != nil {
		log.Error("store result failed", slog.Any("error", err))
		return
	}
	log.Debug("task finished",
		slog.Int("jobs", len(env.JobIDs)),
		slog.Bool("failed", result.Error != ""),
	)
}

// evaluate 逐参数执行命名评估函数。
// 任何一次评估出错或 panic，整个批次以失败回执报出。
func (w *Worker) evaluate(env taskEnvelope) (result resultEnvelope) {
	result.TaskID = env.TaskID

	defer func() {
		if r := recover(); r != nil {
			result.Results = nil
			result.Error = fmt.Sprintf("eval %q panicked: %v", env.EvalName, r)
		}
	}()

	eval, ok := w.registry.Lookup(env.EvalName)
	if !ok {
		result.Error = fmt.Sprintf("%v: %s", xexec.ErrUnknownEval, env.EvalName)
		return result
	}

	results := make([]xexec.Evaluated, 0, len(env.Params))
	for i, theta := range env.Params {
		particle, err := eval(theta)
		if err != nil {
			result.Error = fmt.Sprintf("job %d: %v", env.JobIDs[i], err)
			return result
		}
		results = append(results, xexec.Evaluated{
			JobID:    env.JobIDs[i],
			Accepted: particle.Accepted,
			Particle: particle,
		})
	}
	result.Results = results
	return result
}
