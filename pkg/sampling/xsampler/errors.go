package xsampler

import "errors"

var (
	// ErrInvalidN 表示目标接受数非正。
	ErrInvalidN = errors.New("xsampler: n must be positive")

	// ErrNilSampleOne 表示抽样函数为 nil。
	ErrNilSampleOne = errors.New("xsampler: sample-one func cannot be nil")

	// ErrNilSimulEvalOne 表示评估函数为 nil。
	ErrNilSimulEvalOne = errors.New("xsampler: simul-eval-one func cannot be nil")

	// ErrEvaluation 表示注入的评估函数返回了错误。
	// 错误从 SampleUntilNAccepted 向外传播，本轮中止且无部分结果，不重试。
	ErrEvaluation = errors.New("xsampler: evaluation failed")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xsampler: nil context")
)
