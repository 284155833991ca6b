package xmulticore

import "errors"

var (
	// ErrInvalidWorkers 表示 worker 数量无效。
	ErrInvalidWorkers = errors.New("xmulticore: worker count must be positive")

	// ErrWorkerDied 表示 worker 在交付其结果前意外退出。
	// 这是致命错误，不重试。
	ErrWorkerDied = errors.New("xmulticore: worker died before delivering result")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xmulticore: nil context")
)
