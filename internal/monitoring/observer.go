// Package monitoring provides observation hooks for convergence
// cycles: an observer interface, a fan-out manager, and a structured
// console observer.
package monitoring

import (
	"sync"
	"time"
)

// CycleObserver receives convergence-cycle lifecycle events.
// Implementations can use this to monitor, log, or react to cycles.
type CycleObserver interface {
	// OnCycleStarted is called when a think cycle begins.
	OnCycleStarted(traceID, input string)

	// OnAspectCompleted is called after an aspect finished its fan-out
	// share of the cycle.
	OnAspectCompleted(traceID, aspectID string, outputs int, duration time.Duration)

	// OnPropagationCompleted is called after activation propagation
	// settled or hit its step limit.
	OnPropagationCompleted(traceID, backend string, steps int)

	// OnCycleCompleted is called when a think cycle produced its
	// synthesized result.
	OnCycleCompleted(traceID string, duration time.Duration)

	// OnCycleFailed is called when a think cycle aborted.
	OnCycleFailed(traceID string, err error, duration time.Duration)
}

// ObserverManager fans events out to registered observers. A nil
// manager is valid and drops all events.
type ObserverManager struct {
	mu        sync.RWMutex
	observers []CycleObserver
}

// NewObserverManager creates an empty manager.
func NewObserverManager() *ObserverManager {
	return &ObserverManager{}
}

// AddObserver registers an observer.
func (om *ObserverManager) AddObserver(o CycleObserver) {
	om.mu.Lock()
	defer om.mu.Unlock()
	om.observers = append(om.observers, o)
}

// RemoveObserver unregisters an observer.
func (om *ObserverManager) RemoveObserver(o CycleObserver) {
	om.mu.Lock()
	defer om.mu.Unlock()
	for i, obs := range om.observers {
		if obs == o {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			return
		}
	}
}

// Count returns the number of registered observers.
func (om *ObserverManager) Count() int {
	if om == nil {
		return 0
	}
	om.mu.RLock()
	defer om.mu.RUnlock()
	return len(om.observers)
}

func (om *ObserverManager) each(f func(CycleObserver)) {
	if om == nil {
		return
	}
	om.mu.RLock()
	defer om.mu.RUnlock()
	for _, o := range om.observers {
		f(o)
	}
}

// NotifyCycleStarted notifies all observers that a cycle started.
func (om *ObserverManager) NotifyCycleStarted(traceID, input string) {
	om.each(func(o CycleObserver) { o.OnCycleStarted(traceID, input) })
}

// NotifyAspectCompleted notifies all observers that an aspect finished.
func (om *ObserverManager) NotifyAspectCompleted(traceID, aspectID string, outputs int, duration time.Duration) {
	om.each(func(o CycleObserver) { o.OnAspectCompleted(traceID, aspectID, outputs, duration) })
}

// NotifyPropagationCompleted notifies all observers that propagation
// settled or hit its step limit.
func (om *ObserverManager) NotifyPropagationCompleted(traceID, backend string, steps int) {
	om.each(func(o CycleObserver) { o.OnPropagationCompleted(traceID, backend, steps) })
}

// NotifyCycleCompleted notifies all observers that a cycle completed.
func (om *ObserverManager) NotifyCycleCompleted(traceID string, duration time.Duration) {
	om.each(func(o CycleObserver) { o.OnCycleCompleted(traceID, duration) })
}

// NotifyCycleFailed notifies all observers that a cycle aborted.
func (om *ObserverManager) NotifyCycleFailed(traceID string, err error, duration time.Duration) {
	om.each(func(o CycleObserver) { o.OnCycleFailed(traceID, err, duration) })
}
