// Package xredisexec 基于 Redis 的批量评估执行器，实现 xexec.Client 接口。
//
// 调度器一侧使用 Client 把批次任务序列化后 LPUSH 到任务队列；
// 任意数量的 Worker 进程 BRPOP 取出任务、按名字在注册表里解析
// 评估函数、逐参数评估，并把结果以带 TTL 的键写回。Handle 通过
// 轮询结果键感知完成。
//
// 跨进程只支持命名评估路径：Task.Eval 闭包无法序列化，提交时
// 直接报 ErrClosureTask。Worker 进程要事先用 xexec.Register（或
// 自建 Registry）注册与调度侧相同名字的评估函数。
//
// 取消是协作式的：Cancel 写入墓碑键，尚未被 Worker 取走的任务
// 在出队时被丢弃；已在评估中的任务会跑完，结果无人消费后随 TTL
// 过期。
//
// 使用示例:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	client, err := xredisexec.NewClient(ctx, rdb, 16)
//	if err != nil {
//	    return err
//	}
//	s, err := xbatch.NewScheduler(client, xbatch.WithEvalName("model.sir"))
//
// Worker 进程:
//
//	xexec.MustRegister("model.sir", evalSIR)
//	w, err := xredisexec.NewWorker(rdb)
//	if err != nil {
//	    return err
//	}
//	_ = w.Run(ctx) // 阻塞直到 ctx 取消
package xredisexec
