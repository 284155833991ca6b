// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志构建器，基于 log/slog，支持运行时调级
//
// 设计原则：
//   - 采样引擎各组件通过 WithLogger 选项注入 Logger，不依赖全局状态
//   - 日志级别可通过配置热重载在运行时调整
package observability
