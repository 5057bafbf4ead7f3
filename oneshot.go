// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Waker resumes a cooperatively scheduled task.
// Wake is called at most once per registration, from the goroutine
// that completes the rendezvous.
type Waker interface {
	Wake()
}

// WakerFunc adapts an ordinary function to the Waker interface.
type WakerFunc func()

// Wake calls f().
func (f WakerFunc) Wake() { f() }

// oneshot is the shared state behind a Sender/Receiver pair.
// completed transitions false → true at most once and never reverts.
type oneshot[V any] struct {
	mu        sync.Mutex
	cond      sync.Cond
	completed bool
	ok        bool
	payload   V
	waker     Waker
}

func newOneshot[V any]() *oneshot[V] {
	s := &oneshot[V]{}
	s.cond.L = &s.mu
	return s
}

// complete posts v (ok=true) or a bare close (ok=false).
// Reports false if the rendezvous had already completed.
func (s *oneshot[V]) complete(v V, ok bool) bool {
	s.mu.Lock()
	if s.completed {
		s.mu.Unlock()
		return false
	}
	s.completed = true
	s.ok = ok
	s.payload = v
	w := s.waker
	s.waker = nil
	s.mu.Unlock()

	s.cond.Broadcast()
	if w != nil {
		w.Wake()
	}
	return true
}

// isDone reports whether the rendezvous has completed.
func (s *oneshot[V]) isDone() bool {
	s.mu.Lock()
	done := s.completed
	s.mu.Unlock()
	return done
}

// wait blocks until completion and takes the payload.
func (s *oneshot[V]) wait() (V, bool) {
	s.mu.Lock()
	for !s.completed {
		s.cond.Wait()
	}
	v, ok := s.take()
	s.mu.Unlock()
	return v, ok
}

// poll registers w if the rendezvous is still pending.
// A nil w probes without registering.
func (s *oneshot[V]) poll(w Waker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return nil
	}
	if w != nil {
		s.waker = w
	}
	return iox.ErrWouldBlock
}

// take moves the payload out. Caller holds s.mu.
func (s *oneshot[V]) take() (V, bool) {
	var zero V
	v, ok := s.payload, s.ok
	s.payload = zero
	s.ok = false
	return v, ok
}

// Sender is the sending endpoint of a single-value rendezvous.
// It is single use: exactly one of Send or Close takes effect.
type Sender[V any] struct {
	s    *oneshot[V]
	used atomix.Uint32
}

// Receiver is the receiving endpoint of a single-value rendezvous.
type Receiver[V any] struct {
	s    *oneshot[V]
	used atomix.Uint32
}

// NewOneshot creates a connected single-use Sender/Receiver pair.
//
// The receiver is released by Send or by Close; a Sender that is neither
// sent on nor closed leaves its Receiver blocked forever.
func NewOneshot[V any]() (*Sender[V], *Receiver[V]) {
	s := newOneshot[V]()
	return &Sender[V]{s: s}, &Receiver[V]{s: s}
}

// Send posts v and wakes the receiver.
// Panics if the sender has already been used by Send or Close.
func (tx *Sender[V]) Send(v V) {
	if tx.used.Add(1) != 1 {
		panic("lend: oneshot sender used twice")
	}
	tx.s.complete(v, true)
}

// Close completes the rendezvous without a payload.
// Close after Send or Close is a no-op, so it is safe to defer.
func (tx *Sender[V]) Close() {
	if tx.used.Add(1) != 1 {
		return
	}
	var zero V
	tx.s.complete(zero, false)
}

// Recv blocks until the sender sends or closes.
// Returns (v, true) for a sent value, (zero, false) for a close.
// Panics if called twice.
func (rx *Receiver[V]) Recv() (V, bool) {
	if rx.used.Add(1) != 1 {
		panic("lend: oneshot receiver used twice")
	}
	return rx.s.wait()
}

// TryRecv is the non-blocking form of Recv.
// Returns iox.ErrWouldBlock while the sender is pending; the receiver
// stays unconsumed and may be retried.
func (rx *Receiver[V]) TryRecv() (V, bool, error) {
	if err := rx.s.poll(nil); err != nil {
		var zero V
		return zero, false, err
	}
	v, ok := rx.Recv()
	return v, ok, nil
}

// Poll reports nil once the sender has sent or closed. Otherwise it
// registers w, replacing any earlier registration, and returns
// iox.ErrWouldBlock. The registered waker is invoked exactly once,
// on the goroutine that completes the rendezvous.
func (rx *Receiver[V]) Poll(w Waker) error {
	return rx.s.poll(w)
}
