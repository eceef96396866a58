package entities

import (
	"context"

	"wolfcast/internal/threading/core"
)

// Below this many entities an update runs inline; goroutine hand-off costs
// more than the ticks themselves.
const parallelThreshold = 64

// Ticker is anything advanced once per frame by dt seconds. Tick must only
// touch the receiver's own state.
type Ticker interface {
	Tick(dt float64)
}

// EntityUpdater manages parallel updates for world entities
type EntityUpdater struct {
	workerPool *core.WorkerPool
}

// NewEntityUpdater creates an updater backed by a pool of workers goroutines.
// Zero or less uses one per CPU.
func NewEntityUpdater(workers int) *EntityUpdater {
	return &EntityUpdater{
		workerPool: core.NewWorkerPool(workers),
	}
}

// TickAll advances every item by dt and returns once all are done.
func TickAll[T Ticker](eu *EntityUpdater, items []T, dt float64) {
	if len(items) == 0 {
		return
	}
	if eu == nil || len(items) < parallelThreshold {
		for _, it := range items {
			it.Tick(dt)
		}
		return
	}

	batch := max(1, len(items)/eu.workerPool.GetNumWorkers())
	eu.workerPool.Batches(context.Background(), 0, len(items), batch, func(from, to int) {
		for _, it := range items[from:to] {
			it.Tick(dt)
		}
	})
}
