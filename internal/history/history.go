// internal/history/history.go
//
// Bounded undo/redo over immutable snapshots.
//
// Context
// -------
// The editor session commits a deep copy of the page's section list after
// every change.  Stack keeps those copies as past / present / future so
// Undo and Redo are plain moves between lists.  Snapshots are cloned on
// the way in and on the way out, so callers can never mutate history by
// accident.
//
// Workflow
// --------
//   - Commit pushes the previous present onto past and clears future.
//   - CommitCoalesced replaces the present instead of pushing when the
//     key matches the previous commit and the window has not elapsed.
//     Typing into one field therefore collapses into one undo step.
//   - Boundary ends the current coalescing group (field blur).
//
// Notes
// -----
//   - Undo and Redo on an empty side return (zero, false).
//   - Stack is safe for concurrent use.
package history

import (
	"sync"
	"time"

	"github.com/yanizio/sitekit/internal/metrics"
)

const (
	DefaultMax    = 50
	DefaultWindow = time.Second
)

// Option tweaks a Stack at construction.
type Option func(*options)

type options struct {
	window time.Duration
	now    func() time.Time
}

// WithWindow sets how long consecutive same-key commits coalesce.
func WithWindow(d time.Duration) Option {
	return func(o *options) { o.window = d }
}

// WithClock injects the time source.  Tests use it to step the window.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Stack is a bounded undo/redo history of T snapshots.
type Stack[T any] struct {
	mu    sync.Mutex
	max   int
	clone func(T) T
	opt   options

	past    []T
	present T
	has     bool
	future  []T

	lastKey string
	lastAt  time.Time
}

// New returns an empty stack keeping at most max undo steps.  clone must
// return a value that shares no mutable state with its input.
func New[T any](max int, clone func(T) T, opts ...Option) *Stack[T] {
	if max <= 0 {
		max = DefaultMax
	}
	if clone == nil {
		clone = func(v T) T { return v }
	}
	o := options{window: DefaultWindow, now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return &Stack[T]{max: max, clone: clone, opt: o}
}

// Commit records s as the new present.
func (st *Stack[T]) Commit(s T) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.push(s)
	st.lastKey = ""
	metrics.HistoryCommits.WithLabelValues("push").Inc()
}

// CommitCoalesced records s, folding it into the present when key equals
// the previous coalesced key and the window is still open.
func (st *Stack[T]) CommitCoalesced(key string, s T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.opt.now()
	if st.has && key != "" && key == st.lastKey && now.Sub(st.lastAt) < st.opt.window {
		st.present = st.clone(s)
		st.future = nil
		st.lastAt = now
		metrics.HistoryCommits.WithLabelValues("coalesce").Inc()
		return
	}
	st.push(s)
	st.lastKey = key
	st.lastAt = now
	metrics.HistoryCommits.WithLabelValues("push").Inc()
}

// Boundary forces the next coalesced commit to push a new entry.
func (st *Stack[T]) Boundary() {
	st.mu.Lock()
	st.lastKey = ""
	st.mu.Unlock()
}

func (st *Stack[T]) push(s T) {
	if st.has {
		st.past = append(st.past, st.present)
		if over := len(st.past) - st.max; over > 0 {
			st.past = append(st.past[:0:0], st.past[over:]...)
		}
	}
	st.present = st.clone(s)
	st.has = true
	st.future = nil
}

// Undo moves one step back and returns the restored snapshot.
func (st *Stack[T]) Undo() (T, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	var zero T
	if len(st.past) == 0 {
		return zero, false
	}
	last := len(st.past) - 1
	st.future = append(st.future, st.present)
	st.present = st.past[last]
	st.past = st.past[:last]
	st.lastKey = ""
	return st.clone(st.present), true
}

// Redo re-applies the most recently undone snapshot.
func (st *Stack[T]) Redo() (T, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	var zero T
	if len(st.future) == 0 {
		return zero, false
	}
	last := len(st.future) - 1
	st.past = append(st.past, st.present)
	st.present = st.future[last]
	st.future = st.future[:last]
	st.lastKey = ""
	return st.clone(st.present), true
}

// Present returns a copy of the current snapshot.
func (st *Stack[T]) Present() (T, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.has {
		var zero T
		return zero, false
	}
	return st.clone(st.present), true
}

func (st *Stack[T]) CanUndo() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.past) > 0
}

func (st *Stack[T]) CanRedo() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.future) > 0
}

// Len is the number of available undo steps.
func (st *Stack[T]) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.past)
}
