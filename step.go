// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a lending protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended lending operation.
// DispatchLend is non-blocking: returns iox.ErrWouldBlock when the
// operation cannot make progress yet (the I/O boundary).
//
// On success (nil error), the suspension is consumed and the protocol
// advances to the next effect or completion.
// On iox.ErrWouldBlock, the suspension is unconsumed and may be retried.
// If the pending operation is an Await, wk (when non-nil) is registered
// and woken exactly once when the awaited handle is released, so an event
// loop can park the protocol instead of polling it.
func Advance[R any](susp *kont.Suspension[R], wk Waker) (R, *kont.Suspension[R], error) {
	lop, ok := susp.Op().(lendDispatcher)
	if !ok {
		panic("lend: unhandled effect in Advance")
	}
	v, err := lop.DispatchLend(wk)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
