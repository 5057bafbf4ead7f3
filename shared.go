// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// shareGroup is the state common to every clone of a Shared handle.
// refs counts unreleased clones; the last release completes the transfer.
type shareGroup[T any] struct {
	p      *T
	tx     *Sender[struct{}]
	serial Serial
	refs   atomic.Int64
}

// Shared grants read access to a lent *T to any number of goroutines
// at once. Every clone must be released; the lender's Waiter completes
// when the last one is.
//
// While any clone is live, the pointee must only be read. Mutation is
// permitted only for types that synchronize internally.
type Shared[T any] struct {
	g        *shareGroup[T]
	released atomix.Uint32
}

// NewShared lends p for concurrent read access.
// Equivalent to New followed by Handle.Share.
func NewShared[T any](p *T) (*Shared[T], *Waiter[T]) {
	h, w := New(p)
	return h.Share(), w
}

// Share converts an exclusive handle into a shared one. The handle is
// consumed: Get on it panics afterwards, and its Release is a no-op.
// Panics if the handle has already been released or shared.
func (h *Handle[T]) Share() *Shared[T] {
	if h.released.Add(1) != 1 {
		panic("lend: share of released handle")
	}
	g := &shareGroup[T]{p: h.p, tx: h.tx, serial: h.serial}
	g.refs.Store(1)
	return &Shared[T]{g: g}
}

// Get returns the lent pointer for reading.
// Panics if this clone has been released.
func (s *Shared[T]) Get() *T {
	if s.released.Load() != 0 {
		panic("lend: shared handle used after release")
	}
	return s.g.p
}

// Clone returns another reference to the same loan.
// Panics if this clone has been released.
func (s *Shared[T]) Clone() *Shared[T] {
	if s.released.Load() != 0 {
		panic("lend: clone of released shared handle")
	}
	s.g.refs.Add(1)
	return &Shared[T]{g: s.g}
}

// Release drops this clone's reference. Only the first call on a given
// clone has an effect.
func (s *Shared[T]) Release() {
	if s.released.Add(1) != 1 {
		return
	}
	if s.g.refs.Add(-1) == 0 {
		s.g.tx.Send(struct{}{})
	}
}

// Serial returns the serial number of this transfer.
func (s *Shared[T]) Serial() Serial {
	return s.g.serial
}
