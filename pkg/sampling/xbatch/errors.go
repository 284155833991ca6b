package xbatch

import "errors"

var (
	// ErrNilClient 表示远程执行客户端为 nil。
	ErrNilClient = errors.New("xbatch: client cannot be nil")

	// ErrInvalidBatchSize 表示批大小非正。
	ErrInvalidBatchSize = errors.New("xbatch: batch size must be positive")

	// ErrInvalidMaxJobs 表示在途批次并发上限非正。
	ErrInvalidMaxJobs = errors.New("xbatch: max jobs must be positive")

	// ErrInvalidPollInterval 表示轮询间隔非正。
	ErrInvalidPollInterval = errors.New("xbatch: poll interval must be positive")

	// ErrBatchFailed 表示某个批次执行失败，本轮中止且无部分结果。
	ErrBatchFailed = errors.New("xbatch: batch execution failed")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xbatch: nil context")
)
