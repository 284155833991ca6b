package xsampler_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/abckit/pkg/sampling/xsample"
	"github.com/omeyang/abckit/pkg/sampling/xsampler"
)

// alwaysAccept 返回恒接受的评估函数。
func alwaysAccept(theta xsample.Parameter) (xsample.FullInfoParticle, error) {
	return xsample.FullInfoParticle{
		Parameter: theta,
		Accepted:  true,
		SumStats:  []xsample.SumStat{{"x": theta["theta"]}},
	}, nil
}

func drawConst() xsample.Parameter {
	return xsample.Parameter{"theta": 1}
}

func TestSingleCore_AlwaysAccept_ExactlyN(t *testing.T) {
	s := xsampler.NewSingleCore()

	for _, n := range []int{1, 3, 10} {
		res, err := s.SampleUntilNAccepted(context.Background(), xsampler.Options{
			N:            n,
			SampleOne:    drawConst,
			SimulEvalOne: alwaysAccept,
		})
		require.NoError(t, err)
		assert.Equal(t, n, res.Sample.NAccepted())
		// 恒接受时评估数恰好为 n
		assert.Equal(t, n, res.Evaluations)
	}
}

func TestSingleCore_PartialAcceptance_EvaluationsAtLeastN(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	eval := func(theta xsample.Parameter) (xsample.FullInfoParticle, error) {
		return xsample.FullInfoParticle{
			Parameter: theta,
			Accepted:  rng.Float64() < 0.3,
		}, nil
	}

	s := xsampler.NewSingleCore()
	res, err := s.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N:            5,
		SampleOne:    drawConst,
		SimulEvalOne: eval,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Sample.NAccepted())
	assert.GreaterOrEqual(t, res.Evaluations, 5)
}

func TestSingleCore_EvaluationError_Propagates(t *testing.T) {
	boom := errors.New("simulation blew up")
	eval := func(xsample.Parameter) (xsample.FullInfoParticle, error) {
		return xsample.FullInfoParticle{}, boom
	}

	s := xsampler.NewSingleCore()
	res, err := s.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N:            3,
		SampleOne:    drawConst,
		SimulEvalOne: eval,
	})
	// 本轮中止且无部分结果
	assert.Nil(t, res)
	assert.ErrorIs(t, err, xsampler.ErrEvaluation)
	assert.ErrorIs(t, err, boom)
}

func TestSingleCore_ContextCancel_AbortsStarvation(t *testing.T) {
	// 接受概率为零：没有 context 取消则本轮永不终止
	neverAccept := func(theta xsample.Parameter) (xsample.FullInfoParticle, error) {
		return xsample.FullInfoParticle{Parameter: theta}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := xsampler.NewSingleCore()
	_, err := s.SampleUntilNAccepted(ctx, xsampler.Options{
		N:            1,
		SampleOne:    drawConst,
		SimulEvalOne: neverAccept,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSingleCore_RecordRejected(t *testing.T) {
	calls := 0
	eval := func(theta xsample.Parameter) (xsample.FullInfoParticle, error) {
		calls++
		return xsample.FullInfoParticle{
			Parameter: theta,
			Accepted:  calls%2 == 0, // 拒绝、接受交替
			SumStats:  []xsample.SumStat{{"x": float64(calls)}},
		}, nil
	}

	s := xsampler.NewSingleCore()
	res, err := s.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N:              2,
		SampleOne:      drawConst,
		SimulEvalOne:   eval,
		RecordRejected: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sample.NAccepted())
	assert.Len(t, res.Sample.AllSumStats(), res.Evaluations)
}

func TestOptions_Validate(t *testing.T) {
	valid := xsampler.Options{N: 1, SampleOne: drawConst, SimulEvalOne: alwaysAccept}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		opts xsampler.Options
		want error
	}{
		{"zero n", xsampler.Options{N: 0, SampleOne: drawConst, SimulEvalOne: alwaysAccept}, xsampler.ErrInvalidN},
		{"negative n", xsampler.Options{N: -1, SampleOne: drawConst, SimulEvalOne: alwaysAccept}, xsampler.ErrInvalidN},
		{"nil draw", xsampler.Options{N: 1, SimulEvalOne: alwaysAccept}, xsampler.ErrNilSampleOne},
		{"nil eval", xsampler.Options{N: 1, SampleOne: drawConst}, xsampler.ErrNilSimulEvalOne},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.opts.Validate(), tt.want)
		})
	}
}

func TestSingleCore_NilContext(t *testing.T) {
	s := xsampler.NewSingleCore()
	//nolint:staticcheck // 故意传入 nil context 验证防御行为
	_, err := s.SampleUntilNAccepted(nil, xsampler.Options{
		N: 1, SampleOne: drawConst, SimulEvalOne: alwaysAccept,
	})
	assert.ErrorIs(t, err, xsampler.ErrNilContext)
}
