// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// lendHandler implements kont.Handler for lending effects.
// Waits on iox.ErrWouldBlock, converting non-blocking dispatch
// into blocking evaluation for Exec/ExecExpr.
type lendHandler[R any] struct{}

// Dispatch implements kont.Handler via structural interface assertion.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
func (lendHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	lop, ok := op.(lendDispatcher)
	if !ok {
		panic("lend: unhandled effect in lendHandler")
	}
	return dispatchWait(lop), true
}

// dispatchWait blocks until DispatchLend succeeds, backing off on
// iox.ErrWouldBlock with iox.Backoff.
func dispatchWait(lop lendDispatcher) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := lop.DispatchLend(nil)
		if err == nil {
			return v
		}
		bo.Wait()
	}
}

// Exec runs a Cont-world lending protocol to completion on the calling
// goroutine. Blocks on iox.ErrWouldBlock via adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels.
func Exec[R any](protocol kont.Eff[R]) R {
	return kont.Handle(protocol, lendHandler[R]{})
}

// ExecExpr runs an Expr-world lending protocol to completion on the
// calling goroutine. Blocks on iox.ErrWouldBlock via adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels.
func ExecExpr[R any](protocol kont.Expr[R]) R {
	return kont.HandleExpr(protocol, lendHandler[R]{})
}
