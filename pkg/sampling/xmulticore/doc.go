// Package xmulticore 提供本地 worker 池采样后端。
//
// 拓扑：一个喂料单元把恰好 N 个工作令牌和每个 worker 一个的终止令牌
// 依次写入共享输入通道；min(N, 配置 worker 数) 个 worker 各自从输入
// 通道取令牌，每个令牌执行一次抽取+评估（复用单核基准采样器的 N=1
// 子轮次），把结果粒子与评估计数写入共享输出通道；协调者恰好执行 N
// 次接收，每次接收前检查 worker 存活性。
//
// # 语义
//
//   - worker 在启动时通过 WithWorkerInit 钩子独立播种私有随机源
//   - 已出队的令牌总是执行到底，本后端不存在作业取消
//   - 评估错误向外传播，本轮中止；worker 意外退出（评估代码 panic）
//     且无待取结果时报 ErrWorkerDied，不重试
//   - 每 worker 单粒子 Sample 经 Merge 合并，合并顺序不保证
//   - 失败路径上协调者仍会等待所有 worker 退出，不泄漏 goroutine
package xmulticore
