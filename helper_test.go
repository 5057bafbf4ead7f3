// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend_test

import (
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/lend"
)

// execExpr drives a protocol to completion via Step+Advance loop.
// Retries on iox.ErrWouldBlock (handle still in transit, conduit not ready).
// Used by stepping tests to exercise the non-blocking path.
func execExpr[R any](protocol kont.Expr[R]) R {
	result, susp := lend.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = lend.Advance(susp, nil)
		if err != nil {
			continue
		}
	}
	return result
}

// countingWaker records every Wake and signals the first one on ch.
type countingWaker struct {
	n  atomic.Int32
	ch chan struct{}
}

func newCountingWaker() *countingWaker {
	return &countingWaker{ch: make(chan struct{}, 1)}
}

func (w *countingWaker) Wake() {
	w.n.Add(1)
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// awaitWake fails the test if w is not woken within a second.
func (w *countingWaker) awaitWake(tb testing.TB) {
	tb.Helper()
	select {
	case <-w.ch:
	case <-time.After(time.Second):
		tb.Fatal("waker not invoked")
	}
}

// borrowGated receives a handle on a new goroutine, reports on took once it
// holds the handle, and waits for gate before applying f and releasing.
func borrowGated[T any](h *lend.Handle[T], f func(*T)) (took chan struct{}, gate chan struct{}) {
	took = make(chan struct{})
	gate = make(chan struct{})
	ch := make(chan *lend.Handle[T], 1)
	ch <- h
	go func() {
		h := <-ch
		close(took)
		<-gate
		f(h.Get())
		h.Release()
	}()
	return took, gate
}
