package xexec

import "errors"

var (
	// ErrTransport 表示任务或其参数无法传输到目标 worker。
	// 在提交时报出，例如向跨进程执行器提交闭包任务、载荷无法编码。
	ErrTransport = errors.New("xexec: task not transportable")

	// ErrEmptyTask 表示任务不含任何作业。
	ErrEmptyTask = errors.New("xexec: empty task")

	// ErrJobParamMismatch 表示作业号与参数数量不一致。
	ErrJobParamMismatch = errors.New("xexec: job ids and params length mismatch")

	// ErrNoEval 表示任务既未携带闭包也未指定注册名。
	ErrNoEval = errors.New("xexec: task carries neither eval func nor eval name")

	// ErrUnknownEval 表示注册表中没有该名称的评估函数。
	ErrUnknownEval = errors.New("xexec: unknown eval name")

	// ErrDuplicateEval 表示评估函数名称已被注册。
	ErrDuplicateEval = errors.New("xexec: eval name already registered")

	// ErrNilEval 表示注册的评估函数为 nil。
	ErrNilEval = errors.New("xexec: eval func cannot be nil")

	// ErrEmptyName 表示注册名称为空。
	ErrEmptyName = errors.New("xexec: eval name cannot be empty")

	// ErrInvalidCores 表示核数配置无效。
	ErrInvalidCores = errors.New("xexec: cores must be positive")

	// ErrCancelled 表示任务在开始执行前被取消。
	ErrCancelled = errors.New("xexec: task cancelled before execution")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xexec: nil context")
)
