// Package xsample 提供种群采样的数据模型。
//
// 核心类型：
//   - Parameter: 不透明的参数向量（键值映射），由抽样函数产生
//   - FullInfoParticle: 一次评估的完整记录（接受标志 + 全部尝试的摘要统计）
//   - Particle: 裁剪后的持久化形态（被接受的参数 + 其摘要统计）
//   - Sample: 可变累加器，按评估顺序收集被接受的粒子
//   - Population: 只读的接受粒子集合，构成一个世代
//   - Factory: 按统一配置创建空 Sample 的工厂
//
// # 使用约定
//
//   - Sample 在一轮采样开始时创建，仅在该轮内被变更，返回后视为只读
//   - Append 对每个产出的粒子只调用一次（不重复计数）
//   - Merge 合并在相同配置下构建的两个 Sample；仅保证成员一致性，
//     不保证合并顺序，调用方不应依赖特定顺序
package xsample
