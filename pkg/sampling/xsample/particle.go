package xsample

import "maps"

// Parameter 不透明的参数向量 θ，以键值映射表示。
// 由抽样函数产生，采样引擎只负责搬运，不解释其内容。
type Parameter map[string]float64

// Clone 返回参数的深拷贝。
// 跨 goroutine/进程传递前应拷贝，避免共享可变状态。
func (p Parameter) Clone() Parameter {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// SumStat 一次尝试产生的摘要统计。
type SumStat map[string]float64

// FullInfoParticle 一次评估的完整记录。
//
// 一轮评估内部可能包含多次尝试直至接受；所有尝试的摘要统计
// 都按尝试顺序保留在 SumStats 中，Distances 与之一一对应。
type FullInfoParticle struct {
	// Parameter 被评估的参数点
	Parameter Parameter `json:"parameter"`

	// Accepted 是否通过接受检验
	Accepted bool `json:"accepted"`

	// SumStats 各次尝试的摘要统计（按尝试顺序）
	SumStats []SumStat `json:"sum_stats,omitempty"`

	// Distances 各次尝试到观测数据的距离（与 SumStats 对应）
	Distances []float64 `json:"distances,omitempty"`
}

// ToParticle 裁剪为持久化形态。
// 摘要统计与距离列表做浅拷贝切片，避免后续对 FullInfoParticle
// 的修改影响已持久化的粒子。
func (p FullInfoParticle) ToParticle() Particle {
	stats := make([]SumStat, len(p.SumStats))
	copy(stats, p.SumStats)
	dists := make([]float64, len(p.Distances))
	copy(dists, p.Distances)
	return Particle{
		Parameter: p.Parameter,
		Accepted:  p.Accepted,
		SumStats:  stats,
		Distances: dists,
	}
}

// Particle 种群中的一个参数点：参数加上其摘要统计。
type Particle struct {
	Parameter Parameter
	Accepted  bool
	SumStats  []SumStat
	Distances []float64
}

// Population 只读的接受粒子集合，构成一个世代。
type Population struct {
	particles []Particle
}

// NewPopulation 从粒子列表创建种群。
// 会拷贝切片本身（不拷贝粒子内容），调用方之后对原切片的
// 增删不影响种群。
func NewPopulation(particles []Particle) *Population {
	ps := make([]Particle, len(particles))
	copy(ps, particles)
	return &Population{particles: ps}
}

// Len 返回种群大小。
func (p *Population) Len() int {
	return len(p.particles)
}

// At 返回第 i 个粒子。
func (p *Population) At(i int) Particle {
	return p.particles[i]
}

// Particles 返回粒子列表的快照。
func (p *Population) Particles() []Particle {
	ps := make([]Particle, len(p.particles))
	copy(ps, p.particles)
	return ps
}
