package xredisexec

import "errors"

var (
	// ErrNilRedis 表示 Redis 客户端为空
	ErrNilRedis = errors.New("xredisexec: redis client is nil")

	// ErrClosureTask 表示任务携带闭包评估函数，无法跨进程传输
	ErrClosureTask = errors.New("xredisexec: closure eval cannot cross process, register a named eval")

	// ErrConnect 表示构造时的连通性探测失败
	ErrConnect = errors.New("xredisexec: redis connect probe failed")

	// ErrRemoteEval 表示 Worker 侧评估失败
	ErrRemoteEval = errors.New("xredisexec: remote evaluation failed")

	// ErrInvalidCores 表示声明的评估容量不合法
	ErrInvalidCores = errors.New("xredisexec: cores must be positive")

	// ErrNilContext 表示传入了 nil context
	ErrNilContext = errors.New("xredisexec: nil context")
)
