package metrics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/client/syncer"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.MutationStarted("workouts", entity.OpCreate)
	r.MutationStarted("workouts", entity.OpCreate)
	r.MutationFinished("workouts", entity.OpCreate, "")
	r.MutationFinished("workouts", entity.OpCreate, syncer.ClassNetwork)
	r.Rollback("workouts", entity.OpCreate)
	r.RemoteLatency("workouts", entity.OpCreate, 120*time.Millisecond)
	r.InFlight("workouts", 2)
	r.InFlight("workouts", -1)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.started.WithLabelValues("workouts", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.finished.WithLabelValues("workouts", "create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.finished.WithLabelValues("workouts", "create", "network")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rollbacks.WithLabelValues("workouts", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.inFlight.WithLabelValues("workouts")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency))
}

func TestRecorder_WithCoordinator(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	remote := &syncer.RemoteMock[string]{
		CreateFunc: func(context.Context, string) (entity.Entity[string], error) {
			return entity.Entity[string]{}, errors.New("boom")
		},
	}
	store := entity.NewStore[string]()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := syncer.New[string]("notes", store, remote, logger, syncer.WithRecorder(r))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := c.Create(ctx, "hello").Wait(ctx)
	require.Error(t, err)
	require.NoError(t, c.Drain(ctx))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.started.WithLabelValues("notes", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.finished.WithLabelValues("notes", "create", "server")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rollbacks.WithLabelValues("notes", "create")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.inFlight.WithLabelValues("notes")))
}
