// Package xlog 提供基于 log/slog 的结构化日志构建器。
//
// # 设计理念
//
// xlog 不替代 slog，只收敛本仓库的日志配置方式：Builder 把
// 输出目标、级别、格式组装成一个 *slog.Logger，级别通过
// slog.LevelVar 支持运行时调整（配合 xconf.Watch 热更新）。
//
// 采样引擎的各组件都接受注入的 *slog.Logger（WithLogger 选项），
// 全局 Default 只服务于 cmd 层和简单脚本。
//
// 使用示例:
//
//	logger, levelVar, err := xlog.New().
//	    SetFormat("json").
//	    SetLevelString(cfg.Log.Level).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	pool, _ := xmulticore.NewPool(8, xmulticore.WithLogger(logger))
//	levelVar.Set(slog.LevelDebug) // 运行时调级
package xlog
