// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/kont"
)

// lendDispatcher is the structural interface for lending operations.
// DispatchLend is non-blocking: it returns iox.ErrWouldBlock at the
// boundary where the operation cannot make progress yet. Operations
// that wait on a release register wk to be woken when it happens.
type lendDispatcher interface {
	DispatchLend(wk Waker) (kont.Resumed, error)
}

// Await is the effect operation for waiting on a loan.
// Perform(Await[T]{Waiter: w}) suspends until the paired handle is
// released, consumes w and resumes with the lent pointer.
type Await[T any] struct {
	kont.Phantom[*T]
	Waiter *Waiter[T]
}

// DispatchLend handles Await.
// Non-blocking: returns iox.ErrWouldBlock while the handle is in transit,
// registering wk for the release.
func (o Await[T]) DispatchLend(wk Waker) (kont.Resumed, error) {
	p, err := o.Waiter.tryWait(wk)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Access is the effect operation for dereferencing a handle.
// Perform(Access[T]{Handle: h}) resumes with h.Get().
type Access[T any] struct {
	kont.Phantom[*T]
	Handle *Handle[T]
}

// DispatchLend handles Access. Never blocks.
func (o Access[T]) DispatchLend(Waker) (kont.Resumed, error) {
	return o.Handle.Get(), nil
}

// Release is the effect operation for returning a loan.
// Perform(Release[T]{Handle: h}) releases h. Never blocks.
type Release[T any] struct {
	kont.Phantom[struct{}]
	Handle *Handle[T]
}

// DispatchLend handles Release. Never blocks.
func (o Release[T]) DispatchLend(Waker) (kont.Resumed, error) {
	o.Handle.Release()
	return struct{}{}, nil
}

// Pass is the effect operation for moving a handle into a conduit.
// Perform(Pass[T]{Conduit: c, Handle: h}) enqueues h on c.
type Pass[T any] struct {
	kont.Phantom[struct{}]
	Conduit *Conduit[T]
	Handle  *Handle[T]
}

// DispatchLend handles Pass.
// Non-blocking: returns iox.ErrWouldBlock if the conduit is full.
// Conduits have no wake source, so wk is not registered.
func (o Pass[T]) DispatchLend(Waker) (kont.Resumed, error) {
	if err := o.Conduit.TrySend(o.Handle); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Take is the effect operation for receiving a handle from a conduit.
// Perform(Take[T]{Conduit: c}) resumes with the next handle on c.
type Take[T any] struct {
	kont.Phantom[*Handle[T]]
	Conduit *Conduit[T]
}

// DispatchLend handles Take.
// Non-blocking: returns iox.ErrWouldBlock if the conduit is empty.
func (o Take[T]) DispatchLend(Waker) (kont.Resumed, error) {
	h, err := o.Conduit.TryRecv()
	if err != nil {
		return nil, err
	}
	return h, nil
}
