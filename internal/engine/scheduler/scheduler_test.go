package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/core/ports"
	"go.trai.ch/telly/internal/core/ports/mocks"
	"go.trai.ch/telly/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

// recorder collects the order in which task bodies run.
type recorder struct {
	order []string
}

func (r *recorder) action(name string) domain.Action {
	return func(context.Context, *domain.Run) error {
		r.order = append(r.order, name)
		return nil
	}
}

func newTracer(t *testing.T) *mocks.MockTracer {
	t.Helper()
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	return tracer
}

func TestScheduler_Run_PostOrderOnce(t *testing.T) {
	rec := &recorder{}
	g, err := domain.NewGraphBuilder().
		Define(domain.TaskSpec{Name: "default", Prerequisites: []string{"simulator"}}).
		Define(domain.TaskSpec{Name: "simulator", Prerequisites: []string{"build:simulator", "setup"}, Action: rec.action("simulator")}).
		Define(domain.TaskSpec{Name: "build:simulator", Prerequisites: []string{"setup"}, Action: rec.action("build:simulator")}).
		Define(domain.TaskSpec{Name: "setup", Action: rec.action("setup")}).
		Build()
	require.NoError(t, err)

	sched := scheduler.NewScheduler(newTracer(t))
	run := domain.NewRun(domain.Options{}, nil)

	require.NoError(t, sched.Run(context.Background(), g, run, ""))
	assert.Equal(t, []string{"setup", "build:simulator", "simulator"}, rec.order)

	status, ok := sched.Status("simulator")
	require.True(t, ok)
	assert.Equal(t, scheduler.StatusCompleted, status)
}

func TestScheduler_Run_AccumulatedDefinitions(t *testing.T) {
	rec := &recorder{}
	g, err := domain.NewGraphBuilder().
		Define(domain.TaskSpec{Name: "a", Prerequisites: []string{"b"}, Action: rec.action("a1")}).
		Define(domain.TaskSpec{Name: "a", Prerequisites: []string{"b", "c"}, Action: rec.action("a2")}).
		Define(domain.TaskSpec{Name: "b", Prerequisites: []string{"c"}, Action: rec.action("b")}).
		Define(domain.TaskSpec{Name: "c", Action: rec.action("c")}).
		Build()
	require.NoError(t, err)

	require.NoError(t, scheduler.NewScheduler(newTracer(t)).Run(context.Background(), g, domain.NewRun(domain.Options{}, nil), "a"))
	assert.Equal(t, []string{"c", "b", "a1", "a2"}, rec.order)
}

func TestScheduler_Run_NestedInvokeSharesInvokedSet(t *testing.T) {
	rec := &recorder{}
	var modeAtArchive domain.BuildMode
	var distributionAtArchive bool

	g, err := domain.NewGraphBuilder().
		Define(domain.TaskSpec{Name: "build:device", Action: rec.action("build:device")}).
		Define(domain.TaskSpec{Name: "archive", Prerequisites: []string{"build:device"}, Action: func(_ context.Context, run *domain.Run) error {
			cfg, err := run.Config()
			if err != nil {
				return err
			}
			modeAtArchive = cfg.BuildMode
			distributionAtArchive = cfg.DistributionMode
			rec.order = append(rec.order, "archive")
			return nil
		}}).
		Namespace("archive", func(b *domain.GraphBuilder) {
			b.Define(domain.TaskSpec{Name: "distribution", Action: func(ctx context.Context, run *domain.Run) error {
				cfg, err := run.Config()
				if err != nil {
					return err
				}
				cfg.SetReleaseDistribution()
				if err := run.Invoke(ctx, "archive"); err != nil {
					return err
				}
				return run.Invoke(ctx, "archive")
			}})
		}).
		Build()
	require.NoError(t, err)

	run := domain.NewRun(domain.Options{}, func() (*domain.BuildConfig, error) {
		return &domain.BuildConfig{BuildMode: domain.BuildModeDevelopment}, nil
	})

	require.NoError(t, scheduler.NewScheduler(newTracer(t)).Run(context.Background(), g, run, "archive:distribution"))
	assert.Equal(t, []string{"build:device", "archive"}, rec.order)
	assert.Equal(t, domain.BuildModeRelease, modeAtArchive)
	assert.True(t, distributionAtArchive)
}

func TestScheduler_Run_Errors(t *testing.T) {
	t.Run("unknown target", func(t *testing.T) {
		g, err := domain.NewGraphBuilder().Define(domain.TaskSpec{Name: "a"}).Build()
		require.NoError(t, err)

		err = scheduler.NewScheduler(newTracer(t)).Run(context.Background(), g, domain.NewRun(domain.Options{}, nil), "missing")
		require.ErrorIs(t, err, domain.ErrUnknownTask)
	})

	t.Run("cycle fails before any body", func(t *testing.T) {
		rec := &recorder{}
		g, err := domain.NewGraphBuilder().
			Define(domain.TaskSpec{Name: "a", Prerequisites: []string{"b"}, Action: rec.action("a")}).
			Define(domain.TaskSpec{Name: "b", Prerequisites: []string{"a"}, Action: rec.action("b")}).
			Build()
		require.NoError(t, err)

		err = scheduler.NewScheduler(newTracer(t)).Run(context.Background(), g, domain.NewRun(domain.Options{}, nil), "a")
		require.ErrorIs(t, err, domain.ErrCyclicDependency)
		assert.Empty(t, rec.order)
	})

	t.Run("nested invoke of a running task is a cycle", func(t *testing.T) {
		g, err := domain.NewGraphBuilder().
			Define(domain.TaskSpec{Name: "loop", Action: func(ctx context.Context, run *domain.Run) error {
				return run.Invoke(ctx, "loop")
			}}).
			Build()
		require.NoError(t, err)

		err = scheduler.NewScheduler(newTracer(t)).Run(context.Background(), g, domain.NewRun(domain.Options{}, nil), "loop")
		require.ErrorIs(t, err, domain.ErrCyclicDependency)
	})

	t.Run("nested invoke of unknown task", func(t *testing.T) {
		g, err := domain.NewGraphBuilder().
			Define(domain.TaskSpec{Name: "a", Action: func(ctx context.Context, run *domain.Run) error {
				return run.Invoke(ctx, "ghost")
			}}).
			Build()
		require.NoError(t, err)

		err = scheduler.NewScheduler(newTracer(t)).Run(context.Background(), g, domain.NewRun(domain.Options{}, nil), "a")
		require.ErrorIs(t, err, domain.ErrUnknownTask)
	})

	t.Run("failure stops the run", func(t *testing.T) {
		rec := &recorder{}
		boom := errors.New("boom")
		g, err := domain.NewGraphBuilder().
			Define(domain.TaskSpec{Name: "top", Prerequisites: []string{"first", "second"}, Action: rec.action("top")}).
			Define(domain.TaskSpec{Name: "first", Action: func(context.Context, *domain.Run) error { return boom }}).
			Define(domain.TaskSpec{Name: "second", Action: rec.action("second")}).
			Build()
		require.NoError(t, err)

		sched := scheduler.NewScheduler(newTracer(t))
		err = sched.Run(context.Background(), g, domain.NewRun(domain.Options{}, nil), "top")
		require.ErrorIs(t, err, boom)
		assert.Empty(t, rec.order)

		status, _ := sched.Status("first")
		assert.Equal(t, scheduler.StatusFailed, status)
		status, _ = sched.Status("second")
		assert.Equal(t, scheduler.StatusPending, status)
	})

	t.Run("cancelled context stops before the next body", func(t *testing.T) {
		rec := &recorder{}
		ctx, cancel := context.WithCancel(context.Background())
		g, err := domain.NewGraphBuilder().
			Define(domain.TaskSpec{Name: "top", Prerequisites: []string{"first"}, Action: rec.action("top")}).
			Define(domain.TaskSpec{Name: "first", Action: func(context.Context, *domain.Run) error {
				cancel()
				return nil
			}}).
			Build()
		require.NoError(t, err)

		err = scheduler.NewScheduler(newTracer(t)).Run(ctx, g, domain.NewRun(domain.Options{}, nil), "top")
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, rec.order)
	})

	t.Run("tasks without bodies complete after cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		g, err := domain.NewGraphBuilder().
			Define(domain.TaskSpec{Name: "default", Prerequisites: []string{"simulator"}}).
			Define(domain.TaskSpec{Name: "simulator", Action: func(context.Context, *domain.Run) error {
				cancel()
				return nil
			}}).
			Build()
		require.NoError(t, err)

		sched := scheduler.NewScheduler(newTracer(t))
		require.NoError(t, sched.Run(ctx, g, domain.NewRun(domain.Options{}, nil), ""))

		status, _ := sched.Status("default")
		assert.Equal(t, scheduler.StatusCompleted, status)
	})
}

func TestScheduler_Run_EmitsPlanAndSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	g, err := domain.NewGraphBuilder().
		Define(domain.TaskSpec{Name: "device", Prerequisites: []string{"archive"}, Action: func(context.Context, *domain.Run) error { return nil }}).
		Define(domain.TaskSpec{Name: "archive", Action: func(context.Context, *domain.Run) error { return nil }}).
		Build()
	require.NoError(t, err)

	gomock.InOrder(
		tracer.EXPECT().EmitPlan(gomock.Any(), []string{"archive", "device"}, []string{"device"}),
		tracer.EXPECT().Start(gomock.Any(), "archive").Return(context.Background(), span),
		tracer.EXPECT().Start(gomock.Any(), "device").Return(context.Background(), span),
	)
	span.EXPECT().End().Times(2)

	require.NoError(t, scheduler.NewScheduler(tracer).Run(context.Background(), g, domain.NewRun(domain.Options{}, nil), "device"))
}
