package xrun

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestGroup_AllServicesSucceed(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, _ := NewGroup(context.Background())

	var ran atomic.Int32
	for i := 0; i < 3; i++ {
		g.Go(func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	assert.NoError(t, g.Wait())
	assert.Equal(t, int32(3), ran.Load())
}

func TestGroup_ErrorCancelsSiblings(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	g, _ := NewGroup(context.Background())

	g.Go(func(ctx context.Context) error {
		return boom
	})
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, g.Wait(), boom)
}

func TestGroup_CancelWithCause(t *testing.T) {
	defer goleak.VerifyNone(t)

	cause := errors.New("shutdown requested")
	g, _ := NewGroup(context.Background())

	g.Go(WaitForDone())
	g.Cancel(cause)

	assert.ErrorIs(t, g.Wait(), cause)
}

func TestGroup_CancelNilCauseReturnsNil(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, _ := NewGroup(context.Background())
	g.Go(WaitForDone())
	g.Cancel(nil)

	assert.NoError(t, g.Wait())
}

func TestGroup_InternalCancellationNotFiltered(t *testing.T) {
	defer goleak.VerifyNone(t)

	// 服务内部返回 context.Canceled 而 Group 未被取消：不过滤
	g, _ := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		return context.Canceled
	})

	assert.ErrorIs(t, g.Wait(), context.Canceled)
}

func TestGroup_NilFunc(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, _ := NewGroup(context.Background())
	g.Go(nil)
	assert.ErrorIs(t, g.Wait(), ErrNilFunc)
}

func TestGroup_GoWithName(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, _ := NewGroup(context.Background(), WithName("test-group"))

	var ran atomic.Bool
	g.GoWithName("sampler", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.NoError(t, g.Wait())
	assert.True(t, ran.Load())
}

func TestRun_SignalTriggersShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	sigCh := make(chan os.Signal, 1)
	ctx := withTestSigChan(context.Background(), (<-chan os.Signal)(sigCh))

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, WaitForDone())
	}()

	sigCh <- syscall.SIGTERM

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrSignal)
		var sigErr *SignalError
		require.ErrorAs(t, err, &sigErr)
		assert.Equal(t, syscall.SIGTERM, sigErr.Signal)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after signal")
	}
}

func TestRun_ServiceErrorPropagates(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("worker crashed")
	err := Run(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRun_WithoutSignalHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	// 没有信号服务：所有服务返回后 Run 直接返回
	err := RunWithOptions(context.Background(),
		[]Option{WithoutSignalHandler()},
		func(ctx context.Context) error { return nil },
	)
	assert.NoError(t, err)
}

func TestRun_ParentContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, WaitForDone())
	}()

	cancel()

	select {
	case err := <-done:
		// 父 context 取消属于普通取消，被过滤为 nil
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after parent cancel")
	}
}

func TestSignalError(t *testing.T) {
	err := &SignalError{Signal: syscall.SIGINT}
	assert.ErrorIs(t, err, ErrSignal)
	assert.Contains(t, err.Error(), "interrupt")

	var nilSig *SignalError = &SignalError{}
	assert.Contains(t, nilSig.Error(), "<nil>")
}
