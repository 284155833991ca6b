package xsample

// Sample 采样过程中的粒子累加器。
//
// 不变量：接受粒子数等于以 Accepted=true 调用 Append 的次数；
// 全部尝试统计列表仅在启用拒绝记录时填充。
//
// Sample 不做内部加锁：一轮采样内由单个 goroutine 写入，
// 并发后端通过各自持有分片 Sample、最后 Merge 的方式合并。
type Sample struct {
	recordRejected bool
	accepted       []Particle
	allSumStats    []SumStat
}

// NewSample 创建空 Sample。
// recordRejected 为 true 时，Append 会把每个粒子（无论是否被接受）
// 的全部尝试统计追加到统计列表。
func NewSample(recordRejected bool) *Sample {
	return &Sample{recordRejected: recordRejected}
}

// RecordRejected 返回是否记录被拒绝粒子的摘要统计。
func (s *Sample) RecordRejected() bool {
	return s.recordRejected
}

// Append 追加一个评估结果。
// 仅当粒子被接受时加入接受列表；仅当启用拒绝记录时，
// 把该粒子全部尝试的摘要统计追加到统计列表。
// 对每个产出的粒子只应调用一次。
func (s *Sample) Append(p FullInfoParticle) {
	if p.Accepted {
		s.accepted = append(s.accepted, p.ToParticle())
	}
	if s.recordRejected {
		s.allSumStats = append(s.allSumStats, p.SumStats...)
	}
}

// NAccepted 返回当前接受粒子数。
func (s *Sample) NAccepted() int {
	return len(s.accepted)
}

// AcceptedParticles 返回接受粒子列表的快照。
func (s *Sample) AcceptedParticles() []Particle {
	ps := make([]Particle, len(s.accepted))
	copy(ps, s.accepted)
	return ps
}

// AllSumStats 返回全部尝试统计列表的快照。
// 未启用拒绝记录时恒为空。
func (s *Sample) AllSumStats() []SumStat {
	stats := make([]SumStat, len(s.allSumStats))
	copy(stats, s.allSumStats)
	return stats
}

// GetAcceptedPopulation 生成由接受粒子构成的种群快照。
// 返回后 Sample 不应再被变更。
func (s *Sample) GetAcceptedPopulation() *Population {
	return NewPopulation(s.accepted)
}

// Merge 合并两个在相同配置下构建的 Sample，返回新 Sample。
// 两边的接受列表与统计列表分别拼接；仅保证成员一致性，
// 不保证特定顺序。other 为 nil 时等价于自身的拷贝。
func (s *Sample) Merge(other *Sample) *Sample {
	merged := NewSample(s.recordRejected)
	merged.accepted = append(merged.accepted, s.accepted...)
	merged.allSumStats = append(merged.allSumStats, s.allSumStats...)
	if other != nil {
		merged.accepted = append(merged.accepted, other.accepted...)
		merged.allSumStats = append(merged.allSumStats, other.allSumStats...)
	}
	return merged
}

// Factory 按统一配置创建空 Sample 的工厂。
// 距离函数、阈值调度等外部组件通过它影响采样过程的记录行为。
type Factory struct {
	// RecordRejected 是否记录被拒绝粒子的摘要统计
	RecordRejected bool
}

// New 创建一个空 Sample。
func (f Factory) New() *Sample {
	return NewSample(f.RecordRejected)
}
