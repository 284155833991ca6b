package xsampler

import (
	"context"

	"github.com/omeyang/abckit/pkg/sampling/xsample"
)

// DrawFunc 抽取一个候选参数。
// 必须可重复调用，并且在并发后端下可被多个 goroutine 安全地并发调用。
type DrawFunc func() xsample.Parameter

// EvalFunc 对一个候选参数执行模拟与接受检验，返回完整评估记录。
// 可能代价高昂；与并发后端配合使用时须可传输到进程外的 worker
// （见 xexec 的两种传输路径）。
type EvalFunc func(xsample.Parameter) (xsample.FullInfoParticle, error)

// Options 一轮采样的配置，由调用方每轮新建。
type Options struct {
	// N 目标接受粒子数，必须为正
	N int

	// SampleOne 抽样函数
	SampleOne DrawFunc

	// SimulEvalOne 评估函数
	SimulEvalOne EvalFunc

	// RecordRejected 是否记录被拒绝粒子的摘要统计
	RecordRejected bool
}

// Validate 校验轮次配置。
func (o Options) Validate() error {
	if o.N <= 0 {
		return ErrInvalidN
	}
	if o.SampleOne == nil {
		return ErrNilSampleOne
	}
	if o.SimulEvalOne == nil {
		return ErrNilSimulEvalOne
	}
	return nil
}

// Factory 返回本轮配置对应的 Sample 工厂。
func (o Options) Factory() xsample.Factory {
	return xsample.Factory{RecordRejected: o.RecordRejected}
}

// Result 一轮采样的结果。
//
// 评估计数随结果返回，而非挂在采样器实例上：
// 采样器实例只承载池/调度配置，可跨轮复用，但同一实例
// 不应被两轮并发调用。
type Result struct {
	// Sample 收集到的粒子，恰好含 N 个接受粒子
	Sample *xsample.Sample

	// Evaluations 本轮消费的评估总数（按严格提交顺序计）
	Evaluations int
}

// Sampler 种群采样器契约。
// 具体变体：单核基准（SingleCore）、本地 worker 池（xmulticore.Pool）、
// 远程批量调度（xbatch.Scheduler）。
type Sampler interface {
	// SampleUntilNAccepted 执行一轮采样，生成一个新世代。
	// ctx 取消时尽快中止并返回 ctx 的错误；评估错误原样向外传播。
	SampleUntilNAccepted(ctx context.Context, opts Options) (*Result, error)
}
