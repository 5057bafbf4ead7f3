// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"runtime"

	"code.hybscloud.com/atomix"
)

// Waiter is the lender's side of a transfer. It must be consumed by Wait
// (or by Await in a protocol) before p is used again.
//
// A Waiter that becomes unreachable while its handle is still in transit
// terminates the process: the lender could otherwise resume using p
// concurrently with the borrower. The same holds for Discard.
type Waiter[T any] struct {
	rx      *Receiver[struct{}]
	anchor  *T
	serial  Serial
	used    atomix.Uint32
	cleanup runtime.Cleanup
}

func newWaiter[T any](p *T, rx *Receiver[struct{}], s Serial) *Waiter[T] {
	w := &Waiter[T]{rx: rx, anchor: p, serial: s}
	w.cleanup = runtime.AddCleanup(w, abandoned[T], rx.s)
	return w
}

// abandoned runs when an unconsumed waiter is collected.
func abandoned[T any](s *oneshot[struct{}]) {
	if !s.isDone() {
		fatal("lend: " + waiterName[T]() + " discarded before its handle was released")
	}
}

// consume marks the waiter used. Once consumed it can no longer be
// abandoned, so the cleanup is cancelled before any blocking.
func (w *Waiter[T]) consume() {
	if w.used.Add(1) != 1 {
		panic("lend: waiter consumed twice")
	}
	w.cleanup.Stop()
}

// Wait blocks until the paired handle is released, then returns the lent
// pointer. After Wait returns no other goroutine holds access to it.
// Panics if the waiter has already been consumed.
func (w *Waiter[T]) Wait() *T {
	w.consume()
	w.rx.Recv()
	return w.anchor
}

// TryWait reports whether the paired handle has been released,
// without blocking or consuming the waiter.
func (w *Waiter[T]) TryWait() bool {
	return w.rx.s.isDone()
}

// Poll returns nil once the paired handle has been released. Otherwise it
// registers wk to be woken on release and returns iox.ErrWouldBlock.
// Poll does not consume the waiter: call Wait after Poll reports nil.
func (w *Waiter[T]) Poll(wk Waker) error {
	return w.rx.Poll(wk)
}

// tryWait consumes the waiter if its handle has been released,
// or returns iox.ErrWouldBlock and leaves it untouched.
func (w *Waiter[T]) tryWait(wk Waker) (*T, error) {
	if err := w.rx.Poll(wk); err != nil {
		return nil, err
	}
	return w.Wait(), nil
}

// Discard drops the waiter without waiting. If the paired handle is
// still in transit the process is terminated. Discard after Wait is a
// no-op.
func (w *Waiter[T]) Discard() {
	if w.used.Load() != 0 {
		return
	}
	if !w.rx.s.isDone() {
		fatal("lend: " + waiterName[T]() + " discarded before its handle was released")
	}
	w.consume()
}

// Serial returns the serial number of this transfer.
func (w *Waiter[T]) Serial() Serial {
	return w.serial
}
