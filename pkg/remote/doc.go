// Package remote 提供批量评估的执行器子包。
//
// 子包列表：
//   - xexec: 执行器契约（Task/Handle/Client）、评估函数注册表与进程内实现
//   - xredisexec: 基于 Redis 任务队列的跨进程执行器与 Worker
package remote
