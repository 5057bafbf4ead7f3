// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// Conduit moves handles from one producer goroutine to one consumer
// goroutine over a bounded lock-free SPSC queue.
//
// At most one goroutine may send and at most one may receive at a time.
// Conduits never block internally: TrySend and TryRecv return
// iox.ErrWouldBlock at the boundary, Send and Recv wait past it with
// adaptive backoff.
type Conduit[T any] struct {
	q    lfq.SPSC[*Handle[T]]
	slot *Handle[T]
}

// NewConduit creates a conduit holding up to capacity handles.
// Panics if capacity is not positive.
func NewConduit[T any](capacity int) *Conduit[T] {
	if capacity <= 0 {
		panic("lend: conduit capacity must be positive")
	}
	c := &Conduit[T]{}
	c.q.Init(capacity)
	return c
}

// TrySend enqueues h. Returns iox.ErrWouldBlock if the conduit is full.
func (c *Conduit[T]) TrySend(h *Handle[T]) error {
	c.slot = h
	err := c.q.Enqueue(&c.slot)
	c.slot = nil
	return err
}

// TryRecv dequeues the next handle. Returns iox.ErrWouldBlock if the
// conduit is empty.
func (c *Conduit[T]) TryRecv() (*Handle[T], error) {
	return c.q.Dequeue()
}

// Send enqueues h, backing off while the conduit is full.
func (c *Conduit[T]) Send(h *Handle[T]) {
	var bo iox.Backoff
	for {
		if err := c.TrySend(h); err == nil {
			return
		}
		bo.Wait()
	}
}

// Recv dequeues the next handle, backing off while the conduit is empty.
func (c *Conduit[T]) Recv() *Handle[T] {
	var bo iox.Backoff
	for {
		h, err := c.TryRecv()
		if err == nil {
			return h
		}
		bo.Wait()
	}
}
