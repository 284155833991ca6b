package xmulticore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/omeyang/abckit/pkg/sampling/xsample"
	"github.com/omeyang/abckit/pkg/sampling/xsampler"
)

func drawConst() xsample.Parameter {
	return xsample.Parameter{"theta": 1}
}

func acceptAll(theta xsample.Parameter) (xsample.FullInfoParticle, error) {
	return xsample.FullInfoParticle{
		Parameter: theta,
		Accepted:  true,
		SumStats:  []xsample.SumStat{{"x": theta["theta"]}},
	}, nil
}

func TestFeed_TokenSequence(t *testing.T) {
	// n=5 个工作令牌后跟 3 个终止令牌
	ch := make(chan token, 8)
	feed(ch, 5, 3)
	close(ch)

	var tokens []token
	for tok := range ch {
		tokens = append(tokens, tok)
	}
	require.Len(t, tokens, 8)
	for i, tok := range tokens {
		if i < 5 {
			assert.False(t, tok.stop, "token %d should be a work token", i)
		} else {
			assert.True(t, tok.stop, "token %d should be a stop token", i)
		}
	}
}

func TestNewPool_InvalidWorkers(t *testing.T) {
	_, err := NewPool(0)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestPool_AlwaysAccept_ExactlyN(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool, err := NewPool(3)
	require.NoError(t, err)

	res, err := pool.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N:            5,
		SampleOne:    drawConst,
		SimulEvalOne: acceptAll,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Sample.NAccepted())
	// 恒接受时每令牌恰好一次评估
	assert.Equal(t, 5, res.Evaluations)
}

func TestPool_SpawnsMinOfNAndWorkers(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	seen := map[int]bool{}
	pool, err := NewPool(3, WithWorkerInit(func(id int) {
		mu.Lock()
		seen[id] = true
		mu.Unlock()
	}))
	require.NoError(t, err)

	// n=5, workers=3：恰好启动 3 个 worker
	_, err = pool.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N: 5, SampleOne: drawConst, SimulEvalOne: acceptAll,
	})
	require.NoError(t, err)
	assert.Len(t, seen, 3)

	// n=2, workers=3：启动数不超过 n
	seen = map[int]bool{}
	_, err = pool.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N: 2, SampleOne: drawConst, SimulEvalOne: acceptAll,
	})
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}

func TestPool_PartialAcceptance_EvaluationsAtLeastN(t *testing.T) {
	defer goleak.VerifyNone(t)

	// 按评估次序交替拒绝/接受；评估计数必然 >= n
	var calls sync.Map
	var counter struct {
		sync.Mutex
		n int
	}
	eval := func(theta xsample.Parameter) (xsample.FullInfoParticle, error) {
		counter.Lock()
		counter.n++
		c := counter.n
		counter.Unlock()
		calls.Store(c, true)
		return xsample.FullInfoParticle{
			Parameter: theta,
			Accepted:  c%2 == 0,
		}, nil
	}

	pool, err := NewPool(4)
	require.NoError(t, err)

	res, err := pool.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N: 6, SampleOne: drawConst, SimulEvalOne: eval,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Sample.NAccepted())
	assert.GreaterOrEqual(t, res.Evaluations, 6)
}

func TestPool_MergeMembership_NotOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	// 每次抽取产生可区分的参数；只断言成员，不断言合并顺序
	var seq struct {
		sync.Mutex
		n float64
	}
	draw := func() xsample.Parameter {
		seq.Lock()
		seq.n++
		v := seq.n
		seq.Unlock()
		return xsample.Parameter{"theta": v}
	}

	pool, err := NewPool(3)
	require.NoError(t, err)

	res, err := pool.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N: 6, SampleOne: draw, SimulEvalOne: acceptAll,
	})
	require.NoError(t, err)

	got := map[float64]bool{}
	for _, p := range res.Sample.AcceptedParticles() {
		got[p.Parameter["theta"]] = true
	}
	assert.Len(t, got, 6)
	for v := 1.0; v <= 6; v++ {
		assert.True(t, got[v], "theta=%v missing from merged sample", v)
	}
}

func TestPool_EvaluationError_Propagates(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("simulator exploded")
	eval := func(xsample.Parameter) (xsample.FullInfoParticle, error) {
		return xsample.FullInfoParticle{}, boom
	}

	pool, err := NewPool(2)
	require.NoError(t, err)

	res, err := pool.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N: 4, SampleOne: drawConst, SimulEvalOne: eval,
	})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, xsampler.ErrEvaluation)
	assert.ErrorIs(t, err, boom)
}

func TestPool_WorkerDeath_ReportsFatal(t *testing.T) {
	defer goleak.VerifyNone(t)

	// 评估代码 panic：worker 不交付结果直接退出
	eval := func(xsample.Parameter) (xsample.FullInfoParticle, error) {
		panic("worker killed")
	}

	pool, err := NewPool(3)
	require.NoError(t, err)

	res, err := pool.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N: 5, SampleOne: drawConst, SimulEvalOne: eval,
	})
	assert.Nil(t, res)
	// 报告致命错误而非无限期挂起
	assert.ErrorIs(t, err, ErrWorkerDied)
}

func TestPool_ContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	neverAccept := func(theta xsample.Parameter) (xsample.FullInfoParticle, error) {
		return xsample.FullInfoParticle{Parameter: theta}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool, err := NewPool(2)
	require.NoError(t, err)

	_, err = pool.SampleUntilNAccepted(ctx, xsampler.Options{
		N: 3, SampleOne: drawConst, SimulEvalOne: neverAccept,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPool_RecordRejected(t *testing.T) {
	defer goleak.VerifyNone(t)

	var counter struct {
		sync.Mutex
		n int
	}
	eval := func(theta xsample.Parameter) (xsample.FullInfoParticle, error) {
		counter.Lock()
		counter.n++
		c := counter.n
		counter.Unlock()
		return xsample.FullInfoParticle{
			Parameter: theta,
			Accepted:  c%3 == 0,
			SumStats:  []xsample.SumStat{{"x": float64(c)}},
		}, nil
	}

	pool, err := NewPool(2)
	require.NoError(t, err)

	res, err := pool.SampleUntilNAccepted(context.Background(), xsampler.Options{
		N: 3, SampleOne: drawConst, SimulEvalOne: eval, RecordRejected: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Sample.NAccepted())
	// 启用拒绝记录时，每次评估的尝试统计都被保留
	assert.Len(t, res.Sample.AllSumStats(), res.Evaluations)
}
