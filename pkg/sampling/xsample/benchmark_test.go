package xsample_test

import (
	"testing"

	"github.com/omeyang/abckit/pkg/sampling/xsample"
)

func benchParticle(accepted bool) xsample.FullInfoParticle {
	return xsample.FullInfoParticle{
		Parameter: xsample.Parameter{"theta": 0.5, "sigma": 1.2},
		Accepted:  accepted,
		SumStats:  []xsample.SumStat{{"mean": 0.1, "var": 0.9}},
		Distances: []float64{0.07},
	}
}

func BenchmarkSample_Append(b *testing.B) {
	s := xsample.NewSample(false)
	p := benchParticle(true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Append(p)
	}
}

func BenchmarkSample_AppendRecordRejected(b *testing.B) {
	s := xsample.NewSample(true)
	p := benchParticle(false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Append(p)
	}
}

func BenchmarkSample_Merge(b *testing.B) {
	left := xsample.NewSample(false)
	right := xsample.NewSample(false)
	for i := 0; i < 64; i++ {
		left.Append(benchParticle(true))
		right.Append(benchParticle(true))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = left.Merge(right)
	}
}

func BenchmarkParameter_Clone(b *testing.B) {
	p := xsample.Parameter{"theta": 0.5, "sigma": 1.2, "rho": -0.3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Clone()
	}
}
