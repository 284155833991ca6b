// Package sampling 提供近似贝叶斯计算的种群采样子包。
//
// 子包列表：
//   - xsample: 粒子与样本数据模型（Parameter/Particle/Sample/Population）
//   - xsampler: 采样器契约与单核基线实现
//   - xmulticore: 本地 worker 池后端，令牌喂料 + 结果汇总
//   - xbatch: 批量调度器，配合远端执行器做顺序一致的种群重组
//
// 三种后端实现同一个 Sampler 契约，对同样的抽样与评估函数
// 产出同分布的种群，调用方可按部署形态自由切换。
package sampling
