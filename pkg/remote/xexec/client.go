package xexec

import (
	"context"

	"github.com/omeyang/abckit/pkg/sampling/xsample"
	"github.com/omeyang/abckit/pkg/sampling/xsampler"
)

// Task 一批待评估的参数，带有提交时分配的严格递增作业号。
//
// EvalName 与 Eval 至少设置其一；两者同时设置时命名路径优先，
// 以便同一任务既能在进程内也能跨进程执行。
type Task struct {
	// JobIDs 批内各评估的作业号，与 Params 一一对应
	JobIDs []int64

	// Params 待评估的参数
	Params []xsample.Parameter

	// EvalName 命名路径：worker 侧从注册表解析的评估函数名
	EvalName string

	// Eval 闭包路径：直接携带的评估函数，仅进程内执行器可承载
	Eval xsampler.EvalFunc
}

// Validate 校验任务结构。
func (t Task) Validate() error {
	if len(t.JobIDs) == 0 {
		return ErrEmptyTask
	}
	if len(t.JobIDs) != len(t.Params) {
		return ErrJobParamMismatch
	}
	if t.EvalName == "" && t.Eval == nil {
		return ErrNoEval
	}
	return nil
}

// Evaluated 批内单个评估的完成结果。
type Evaluated struct {
	// JobID 提交时分配的作业号
	JobID int64 `json:"job_id"`

	// Accepted 是否通过接受检验
	Accepted bool `json:"accepted"`

	// Particle 完整评估记录
	Particle xsample.FullInfoParticle `json:"particle"`
}

// Handle 在途任务句柄。
type Handle interface {
	// Done 报告任务是否已完成（含失败）。不阻塞。
	Done() bool

	// Result 返回批内全部评估结果。任务未完成时阻塞直至完成或
	// ctx 取消。任务执行失败时返回错误。
	Result(ctx context.Context) ([]Evaluated, error)

	// Cancel 取消任务。只能阻止尚未开始执行的任务；
	// 对已完成的任务是空操作。
	Cancel(ctx context.Context) error
}

// Client 远程执行能力。
// 远程批量调度器据此提交批次并控制准入。
type Client interface {
	// Submit 提交一个任务。传输失败（如载荷无法编码、闭包越界）
	// 在此时报出。
	Submit(ctx context.Context, task Task) (Handle, error)

	// Cores 返回可用的 worker 容量，用于准入控制。
	Cores() int
}
