// Package xrun 基于 errgroup 提供进程生命周期管理。
//
// # 设计理念
//
// 采样引擎的两类进程都需要同一套生命周期骨架：调度进程要在
// 采样轮与信号处理之间协调退出，Worker 进程要在队列消费循环
// 之上叠加信号驱动的优雅停机。xrun 把这套骨架收敛为 Group
// （并发运行 + 协调取消）与 Run（信号监听 + 运行服务）。
//
// 当任一服务返回错误或收到系统信号时，所有服务的 ctx 都会被
// 取消；Wait 返回第一个有语义的错误，信号退出以 *SignalError
// 报出。
//
// 使用示例:
//
//	err := xrun.Run(ctx, func(ctx context.Context) error {
//	    return worker.Run(ctx)
//	})
//	if errors.Is(err, xrun.ErrSignal) {
//	    logger.Info("shut down by signal")
//	}
package xrun
