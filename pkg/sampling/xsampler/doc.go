// Package xsampler 定义种群采样器的抽象契约与单核基准实现。
//
// 采样器的唯一操作是 SampleUntilNAccepted：反复抽取候选参数并评估，
// 直至收集到恰好 N 个被接受的粒子。评估总次数作为轮次结果的一部分
// 返回（而非采样器实例上的可变计数器），供下游自适应算法计算接受率。
//
// # 契约
//
//   - 结果恰好包含 Options.N 个接受粒子
//   - Result.Evaluations 等于按严格提交顺序消费的最后一个粒子的评估序号
//   - 评估函数返回错误时，错误向外传播，本轮中止且无部分结果，不重试
//   - 不保证壁钟时间上界；接受概率非零时仅保证概率意义上的进展。
//     接受概率趋零时本轮不会终止（饥饿），限制执行时间是调用方的
//     责任——通过 context 取消或超时实现
//
// 具体执行策略见 xmulticore（本地 worker 池）与 xbatch（远程批量调度）。
package xsampler
