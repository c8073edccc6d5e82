package store

import "sync"

// Latch is a once-per-process gate for a one-shot side effect. The guarded
// action runs under the latch mutex, so two concurrent triggers cannot both
// believe they are first. The latch sets only when the action succeeds: a
// failed attempt leaves it armed for the next trigger.
type Latch struct {
	mu    sync.Mutex
	fired bool
}

// Do runs fn unless the latch has already fired. It reports whether fn ran,
// and returns fn's error. A nil error marks the latch as fired.
func (l *Latch) Do(fn func() error) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fired {
		return false, nil
	}
	if err := fn(); err != nil {
		return true, err
	}
	l.fired = true
	return true, nil
}

// Fired reports whether the latch has been set.
func (l *Latch) Fired() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fired
}
