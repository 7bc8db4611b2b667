package syncer

import (
	"time"

	"github.com/iudanet/fitsync/internal/client/entity"
)

// Recorder принимает метрики мутаций. Реализация на prometheus - internal/client/metrics.
type Recorder interface {
	MutationStarted(collection string, op entity.OpKind)
	// MutationFinished class пустой при успехе
	MutationFinished(collection string, op entity.OpKind, class Class)
	Rollback(collection string, op entity.OpKind)
	RemoteLatency(collection string, op entity.OpKind, d time.Duration)
	InFlight(collection string, delta int)
}

type nopRecorder struct{}

func (nopRecorder) MutationStarted(string, entity.OpKind) {}
func (nopRecorder) MutationFinished(string, entity.OpKind, Class) {}
func (nopRecorder) Rollback(string, entity.OpKind) {}
func (nopRecorder) RemoteLatency(string, entity.OpKind, time.Duration) {}
func (nopRecorder) InFlight(string, int) {}
