// Package xbatch 提供远程批量采样后端：自适应作业发放调度器。
//
// 调度器通过注入的远程执行能力（xexec.Client）提交批次，容忍乱序
// 完成，并以严格提交顺序重组结果，保证在相同随机种子下种群顺序与
// 评估计数跨运行确定。
//
// # 调度循环
//
// 每次迭代：
//  1. 把所有已完成批次排入按作业号排序的缓冲；对观察到的每个接受
//     结果（无论顺序）递增任意序接受计数
//  2. 顺序消费：只要缓冲中最小作业号等于下一个有效序号就移入已消费
//     列表，推进序号；被接受则递增顺序接受计数
//  3. 顺序接受计数达到 N 则停止提交并退出循环
//  4. 准入控制：仅当在途批次数同时低于并发上限与 worker 容量、
//     且任意序接受计数 < N 时才提交新批次——后一条守卫避免流水线中
//     已有足够接受结果时的过度提交
//  5. 准入时把在途批次补足到两个容量上限的较小值；每个新批次抽取
//     batchSize 个新参数，并打上新发放的严格递增作业号
//
// 退出时取消所有仍在途的批次；已接受但未被顺序消费、作业号超出最终
// 截止点的结果被丢弃——这是把总评估数约束在 N 附近、避免无界超发的
// 显式取舍。
//
// 调度器从不在单个批次上无限期阻塞：只轮询完成状态并继续。
package xbatch
