package scheduler

import (
	"runtime"
	"sync/atomic"
)

// SpinMutex is a CAS-based mutual exclusion lock for very short critical
// sections inside a parallel phase, where an OS mutex's syscall and wakeup
// latency would dominate the section itself. It is not reentrant and does
// not implement sync.Locker's fairness guarantees — do not use it for
// anything held longer than a handful of instructions.
type SpinMutex struct {
	state int32
}

// Lock spins until the mutex is acquired, yielding the processor between
// attempts so a long-held lock doesn't starve other goroutines on the same
// core.
func (m *SpinMutex) Lock() {
	for !atomic.CompareAndSwapInt32(&m.state, 0, 1) {
		runtime.Gosched()
	}
}

// Unlock releases the mutex. Calling Unlock on an unlocked SpinMutex is a
// programming error and left undetected, matching sync.Mutex's own contract.
func (m *SpinMutex) Unlock() {
	atomic.StoreInt32(&m.state, 0)
}

// TryLock attempts to acquire the mutex without spinning, reporting whether
// it succeeded.
func (m *SpinMutex) TryLock() bool {
	return atomic.CompareAndSwapInt32(&m.state, 0, 1)
}
