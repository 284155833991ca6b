package xlog

import (
	"log/slog"
	"sync"
)

// =============================================================================
// 全局 Logger
//
// 定位：cmd 层和脚手架等简单场景。
// 库代码推荐依赖注入（各组件的 WithLogger 选项）。
// =============================================================================

var (
	globalMu       sync.Mutex
	globalLevelVar *slog.LevelVar
)

// Setup 按给定配置构建 Logger 并设为进程默认（slog.SetDefault）。
// 返回构建出的 Logger；之后可用 SetLevel 运行时调级。
func Setup(level, format string) (*slog.Logger, error) {
	logger, levelVar, err := New().
		SetLevelString(level).
		SetFormat(format).
		Build()
	if err != nil {
		return nil, err
	}

	globalMu.Lock()
	globalLevelVar = levelVar
	globalMu.Unlock()

	slog.SetDefault(logger)
	return logger, nil
}

// SetLevel 调整 Setup 所建默认 Logger 的级别。
// Setup 未曾调用或级别字符串非法时返回错误。
func SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLevelVar == nil {
		return ErrNotSetup
	}
	globalLevelVar.Set(slog.Level(parsed))
	return nil
}
