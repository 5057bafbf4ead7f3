// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/atomix"
)

// Handle carries exclusive access to a *T across a goroutine boundary.
//
// A Handle does not own the pointee: storage stays with the lender, and
// the handle only holds the right to access it until Release. The
// pointer returned by Get must not be used after Release, and no other
// access path to the pointee may be used while the handle is live.
//
// A Handle is moved, not shared: exactly one goroutine at a time may use
// it. Use Share for concurrent read access.
type Handle[T any] struct {
	p        *T
	tx       *Sender[struct{}]
	serial   Serial
	released atomix.Uint32
}

// New lends p. The returned Handle may be sent to another goroutine; the
// returned Waiter stays with the caller, who must call Wait before using
// p again.
//
// Panics if p is nil.
func New[T any](p *T) (*Handle[T], *Waiter[T]) {
	if p == nil {
		panic("lend: New with nil pointer")
	}
	tx, rx := NewOneshot[struct{}]()
	s := nextSerial()
	h := &Handle[T]{p: p, tx: tx, serial: s}
	return h, newWaiter(p, rx, s)
}

// Get returns the lent pointer.
// Panics if the handle has been released or shared.
func (h *Handle[T]) Get() *T {
	if h.released.Load() != 0 {
		panic("lend: handle used after release")
	}
	return h.p
}

// Release gives access back to the lender and wakes its Waiter.
// Only the first call has an effect; later calls are no-ops.
func (h *Handle[T]) Release() {
	if h.released.Add(1) != 1 {
		return
	}
	h.tx.Send(struct{}{})
}

// Released reports whether Release or Share has been called.
func (h *Handle[T]) Released() bool {
	return h.released.Load() != 0
}

// Serial returns the serial number of this transfer.
func (h *Handle[T]) Serial() Serial {
	return h.serial
}
