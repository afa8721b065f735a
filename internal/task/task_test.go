package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"aqimap/internal/task"
)

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not return within timeout")
	}
}

func TestCompletion(t *testing.T) {
	rec := &task.Recorder{}
	r := task.NewRunner(rec)
	ctx := context.Background()

	h, err := task.Start(ctx, r, "load", func(ctx context.Context, rep task.Reporter) (int, error) {
		rep.Report(task.Progress{Step: 1, Total: 2, Label: "parse"})
		return 42, nil
	})
	gt.NoError(t, err)
	waitDone(t, h.Done())

	gt.Equal(t, h.Status(), task.Completed)
	v, err := h.Result()
	gt.NoError(t, err)
	gt.Equal(t, v, 42)
	gt.False(t, r.Busy())

	gt.Equal(t, rec.Count("started"), 1)
	gt.Equal(t, rec.Count("finished"), 1)
	gt.Equal(t, h.Progress().Label, "parse")

	t.Run("cancel after completion is a no-op", func(t *testing.T) {
		gt.False(t, h.Cancel())
		gt.Equal(t, h.Status(), task.Completed)
	})
}

func TestWorkError(t *testing.T) {
	rec := &task.Recorder{}
	r := task.NewRunner(rec)

	h, err := task.Start(context.Background(), r, "update", func(ctx context.Context, rep task.Reporter) (string, error) {
		return "", goerr.New("broken source")
	})
	gt.NoError(t, err)
	waitDone(t, h.Done())

	gt.Equal(t, h.Status(), task.Completed)
	_, err = h.Result()
	gt.Error(t, err)
	gt.Equal(t, rec.Count("finished"), 1)
}

func TestCancellation(t *testing.T) {
	rec := &task.Recorder{}
	r := task.NewRunner(rec)
	gate := make(chan struct{})
	observed := make(chan error, 1)

	h, err := task.Start(context.Background(), r, "load", func(ctx context.Context, rep task.Reporter) (int, error) {
		<-gate
		observed <- ctx.Err()
		return 1, ctx.Err()
	})
	gt.NoError(t, err)
	gt.Equal(t, h.Status(), task.Running)

	gt.True(t, h.Cancel())
	gt.Equal(t, h.Status(), task.Cancelled)
	gt.False(t, r.Busy())

	close(gate)
	waitDone(t, h.Done())
	gt.True(t, errors.Is(<-observed, context.Canceled))

	gt.Equal(t, h.Status(), task.Cancelled)
	gt.Equal(t, rec.Count("finished"), 0)
	_, err = h.Result()
	gt.True(t, errors.Is(err, task.ErrNotCompleted))

	t.Run("second cancel reports no change", func(t *testing.T) {
		gt.False(t, h.Cancel())
	})
}

func TestBusyGuard(t *testing.T) {
	r := task.NewRunner(nil)
	gate := make(chan struct{})

	first, err := task.Start(context.Background(), r, "first", func(ctx context.Context, rep task.Reporter) (int, error) {
		<-gate
		return 1, nil
	})
	gt.NoError(t, err)
	gt.True(t, r.Busy())

	_, err = task.Start(context.Background(), r, "second", func(ctx context.Context, rep task.Reporter) (int, error) {
		return 2, nil
	})
	gt.True(t, errors.Is(err, task.ErrBusy))

	close(gate)
	waitDone(t, first.Done())

	third, err := task.Start(context.Background(), r, "third", func(ctx context.Context, rep task.Reporter) (int, error) {
		return 3, nil
	})
	gt.NoError(t, err)
	waitDone(t, third.Done())
	v, err := third.Result()
	gt.NoError(t, err)
	gt.Equal(t, v, 3)
}

func TestPollForwardsProgress(t *testing.T) {
	rec := &task.Recorder{}
	r := task.NewRunner(rec)
	reported := make(chan struct{})
	gate := make(chan struct{})

	h, err := task.Start(context.Background(), r, "load", func(ctx context.Context, rep task.Reporter) (int, error) {
		rep.Report(task.Progress{Step: 1, Total: 3, Label: "parse geometry"})
		close(reported)
		<-gate
		return 0, nil
	})
	gt.NoError(t, err)
	<-reported

	status, p := h.Poll()
	gt.Equal(t, status, task.Running)
	gt.Equal(t, p.Step, 1)
	gt.False(t, p.Indeterminate())

	// no new report, no new signal
	h.Poll()
	gt.Equal(t, rec.Count("progress"), 1)

	close(gate)
	waitDone(t, h.Done())
	status, _ = h.Poll()
	gt.Equal(t, status, task.Completed)
	gt.Equal(t, rec.Count("progress"), 1)
}

func TestWait(t *testing.T) {
	t.Run("returns on completion", func(t *testing.T) {
		r := task.NewRunner(nil)
		h, err := task.Start(context.Background(), r, "load", func(ctx context.Context, rep task.Reporter) (int, error) {
			time.Sleep(20 * time.Millisecond)
			return 7, nil
		})
		gt.NoError(t, err)
		status, err := h.Wait(context.Background(), 5*time.Millisecond)
		gt.NoError(t, err)
		gt.Equal(t, status, task.Completed)
	})

	t.Run("cancels when the waiting context ends", func(t *testing.T) {
		r := task.NewRunner(nil)
		h, err := task.Start(context.Background(), r, "load", func(ctx context.Context, rep task.Reporter) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
		gt.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		status, err := h.Wait(ctx, 5*time.Millisecond)
		gt.Error(t, err)
		gt.Equal(t, status, task.Cancelled)
		waitDone(t, h.Done())
	})
}

func TestStatusString(t *testing.T) {
	gt.Equal(t, task.Idle.String(), "idle")
	gt.Equal(t, task.Running.String(), "running")
	gt.Equal(t, task.Completed.String(), "completed")
	gt.Equal(t, task.Cancelled.String(), "cancelled")
}
