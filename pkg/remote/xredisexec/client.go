package xredisexec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/omeyang/abckit/pkg/remote/xexec"
)

const (
	// DefaultResultTTL 结果键与墓碑键的默认存活时间。
	// 调度器正常消费后结果即被读走，TTL 只兜底无人认领的残留。
	DefaultResultTTL = time.Hour

	// DefaultHandlePoll Handle.Result 轮询结果键的间隔。
	DefaultHandlePoll = 50 * time.Millisecond

	defaultProbeAttempts = 3
	defaultProbeDelay    = 200 * time.Millisecond
)

// Client 把批次任务投递到 Redis 任务队列，实现 xexec.Client。
//
// Cores 是远端评估容量的声明值而非探测值：Worker 随时可能加入
// 或退出，调度器只需要一个准入上限。
type Client struct {
	rdb           redis.UniversalClient
	cores         int
	keys          keySpace
	resultTTL     time.Duration
	handlePoll    time.Duration
	probeAttempts uint
	logger        *slog.Logger
}

var _ xexec.Client = (*Client)(nil)

// ClientOption 配置 Client。
type ClientOption func(*Client)

// WithKeyPrefix 设置所有键的前缀，默认 DefaultKeyPrefix。
func WithKeyPrefix(prefix string) ClientOption {
	return func(c *Client) {
		c.keys = keySpace{prefix: prefix}
	}
}

// WithResultTTL 设置结果键与墓碑键的存活时间，默认 DefaultResultTTL。
func WithResultTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.resultTTL = ttl
	}
}

// WithHandlePoll 设置 Handle.Result 的轮询间隔，默认 DefaultHandlePoll。
func WithHandlePoll(d time.Duration) ClientOption {
	return func(c *Client) {
		c.handlePoll = d
	}
}

// WithProbeAttempts 设置构造时连通性探测的最大尝试次数，默认 3。
func WithProbeAttempts(n uint) ClientOption {
	return func(c *Client) {
		c.probeAttempts = n
	}
}

// WithLogger 设置日志记录器，默认 slog.Default。
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient 创建 Redis 执行客户端。
// cores 声明远端 Worker 的总评估容量，作为调度器的在途批次上限。
// 构造时带重试地 PING 一次，尽早暴露配置错误的地址。
func NewClient(ctx context.Context, rdb redis.UniversalClient, cores int, opts ...ClientOption) (*Client, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if rdb == nil {
		return nil, ErrNilRedis
	}
	if cores <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCores, cores)
	}

	c := &Client{
		rdb:           rdb,
		cores:         cores,
		keys:          keySpace{prefix: DefaultKeyPrefix},
		resultTTL:     DefaultResultTTL,
		handlePoll:    DefaultHandlePoll,
		probeAttempts: defaultProbeAttempts,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	err := retry.New(
		retry.Context(ctx),
		retry.Attempts(c.probeAttempts),
		retry.Delay(defaultProbeDelay),
		retry.LastErrorOnly(true),
	).Do(func() error {
		return c.rdb.Ping(ctx).Err()
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return c, nil
}

// Cores 返回声明的远端评估容量。
func (c *Client) Cores() int {
	return c.cores
}

// Submit 序列化批次并投入任务队列。
// 只接受命名评估路径；携带闭包的任务无法跨进程，返回 ErrClosureTask。
func (c *Client) Submit(ctx context.Context, task xexec.Task) (xexec.Handle, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if task.EvalName == "" {
		return nil, ErrClosureTask
	}

	env := taskEnvelope{
		TaskID:   uuid.NewString(),
		EvalName: task.EvalName,
		JobIDs:   task.JobIDs,
		Params:   task.Params,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: encode task: %w", xexec.ErrTransport, err)
	}

	if err := c.rdb.LPush(ctx, c.keys.queue(), payload).Err(); err != nil {
		return nil, fmt.Errorf("%w: push task: %w", xexec.ErrTransport, err)
	}

	c.logger.Debug("batch submitted",
		slog.String("task_id", env.TaskID),
		slog.String("eval", env.EvalName),
		slog.Int("jobs", len(env.JobIDs)),
	)
	return &redisHandle{client: c, taskID: env.TaskID}, nil
}

// =============================================================================
// Handle 实现
// =============================================================================

// redisHandle 以结果键的存在性表示批次完成。
type redisHandle struct {
	client *Client
	taskID string
}

// Done 非阻塞查询批次是否完成。
// Redis 暂时不可达时按未完成处理，交给下一次轮询。
func (h *redisHandle) Done() bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	n, err := h.client.rdb.Exists(ctx, h.client.keys.result(h.taskID)).Result()
	if err != nil {
		h.client.logger.Debug("result probe failed",
			slog.String("task_id", h.taskID),
			slog.Any("error", err),
		)
		return false
	}
	return n > 0
}

// Result 阻塞等待批次结果。
// Worker 侧的批次失败在此处以 ErrRemoteEval 报出。
func (h *redisHandle) Result(ctx context.Context) ([]xexec.Evaluated, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	for {
		raw, err := h.client.rdb.Get(ctx, h.client.keys.result(h.taskID)).Bytes()
		switch {
		case err == nil:
			var env resultEnvelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return nil, fmt.Errorf("%w: decode result: %w", xexec.ErrTransport, err)
			}
			if env.Error != "" {
				return nil, fmt.Errorf("%w: %s", ErrRemoteEval, env.Error)
			}
			return env.Results, nil
		case errors.Is(err, redis.Nil):
			// 结果尚未写入，轮询等待
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(h.client.handlePoll):
			}
		default:
			return nil, fmt.Errorf("%w: fetch result: %w", xexec.ErrTransport, err)
		}
	}
}

// Cancel 写入取消墓碑。
// 尚未出队的任务会被 Worker 丢弃；已在评估中的任务无法中断。
func (h *redisHandle) Cancel(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	err := h.client.rdb.Set(ctx, h.client.keys.cancel(h.taskID), "1", h.client.resultTTL).Err()
	if err != nil {
		return fmt.Errorf("%w: set cancel tombstone: %w", xexec.ErrTransport, err)
	}
	return nil
}
