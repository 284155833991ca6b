// Package xconf 提供采样引擎的配置加载与热重载，基于 koanf 实现。
//
// # 设计理念
//
// xconf 面向本仓库的典型部署形态：一个调度进程加若干 Worker 进程，
// 共享一份 YAML/JSON 配置。加载流程是 默认值 → 文件 → 类型化结构体，
// 缺省字段取 Default() 的值，加载后做一次整体校验。
//
// # 支持的格式
//
//   - YAML（默认，推荐）：.yaml, .yml
//   - JSON：.json
//
// # 配置监视
//
// Watch 基于 fsnotify 监视配置文件变更并自动重载（监视目录、内置防抖，
// 兼容 vim/emacs 的原子写入）。重载结果通过回调通知，典型用途是运行时
// 调整日志级别：
//
//	w, _ := xconf.Watch("/etc/abckit/config.yaml", func(cfg *xconf.Config, err error) {
//	    if err != nil {
//	        slog.Warn("config reload failed", slog.Any("error", err))
//	        return
//	    }
//	    xlog.SetLevel(cfg.Log.Level)
//	})
//	defer w.Stop()
//	w.StartAsync()
package xconf
