// Package xid 提供采样轮次的分布式唯一 ID，基于 Sonyflake 实现。
//
// 一次 SampleUntilNAccepted 调用构成一个采样轮次。轮次 ID 用于
// 日志关联与 Redis 键命名：多个调度进程共享一个 Redis 实例时，
// 轮次 ID 做键前缀可以隔离各自的任务与结果。
//
// ID 是 63 位整数，时间有序，跨进程唯一。机器 ID 默认从私有
// IPv4 地址派生（Sonyflake 默认策略），容器化部署中可通过
// WithMachineID 显式指定。
//
// 使用示例:
//
//	gen, err := xid.NewGenerator()
//	if err != nil {
//	    return err
//	}
//	round, err := gen.NextRound()
//	logger.Info("round started", slog.Int64("round", round.ID))
package xid
