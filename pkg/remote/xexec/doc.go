// Package xexec 定义远程批量后端消费的远程执行能力。
//
// 调度器（xbatch）只依赖两个窄接口：
//   - Client: Submit(task) 返回任务句柄，Cores() 报告可用 worker 容量
//   - Handle: Done/Result/Cancel 三个操作
//
// # 两条传输路径
//
// Task 支持两条功能等价、仅承载能力不同的传输路径：
//   - 命名路径（窄类型）：Task.EvalName 指向注册表中的评估函数，
//     参数必须可编码，可跨进程/网络边界传输（见 xredisexec）
//   - 闭包路径（宽容）：Task.Eval 直接携带函数值，只能在进程内执行器
//     （Inproc）上运行；跨进程提交会在提交时报 ErrTransport
//
// 两条路径只影响可承载的载荷形态，不影响调度行为。
//
// # 取消语义
//
// Cancel 只能阻止尚未开始执行的任务；已完成的任务无法取消，
// 其结果只能被调用方丢弃。
package xexec
