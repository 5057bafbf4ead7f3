// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/kont"
)

// errorDispatcher is the structural interface of kont error operations.
type errorDispatcher[E any] interface {
	DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
}

// lendErrorHandler handles both lending and error effects.
// Lending ops wait on ErrWouldBlock via iox.Backoff. Error ops short-circuit on Throw.
type lendErrorHandler[E, A any] struct {
	errCtx *kont.ErrorContext[E]
}

// Dispatch implements kont.Handler for the composed Lend+Error handler.
// Dispatch order: Lend → Error.
func (h lendErrorHandler[E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if lop, ok := op.(lendDispatcher); ok {
		return dispatchWait(lop), true
	}
	if eop, ok := op.(errorDispatcher[E]); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[E, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("lend: unhandled effect in lendErrorHandler")
}

// ExecError runs a lending protocol with error handling.
// Returns Either[E, R]: Right on success, Left on Throw.
// Blocks on iox.ErrWouldBlock via adaptive backoff.
//
// A Throw abandons the rest of the protocol. Handles it still holds are
// not released; use Lease to tie a release to the protocol's outcome.
func ExecError[E, R any](protocol kont.Eff[R]) kont.Either[E, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[E, R]](protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := lendErrorHandler[E, R]{errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// ExecErrorExpr runs an Expr lending protocol with error handling.
// Returns Either[E, R]: Right on success, Left on Throw.
// Blocks on iox.ErrWouldBlock via adaptive backoff.
func ExecErrorExpr[E, R any](protocol kont.Expr[R]) kont.Either[E, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := lendErrorHandler[E, R]{errCtx: &errCtx}
	return kont.HandleExpr(wrapped, h)
}

// StepError evaluates a lending protocol with error support until the
// first effect suspension. Returns (Either[E, R], nil) on completion or
// error, or (zero, suspension) if pending.
func StepError[E, R any](protocol kont.Expr[R]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	return kont.StepExpr(wrapped)
}

// AdvanceError dispatches the suspended operation.
// Lending ops are non-blocking (ErrWouldBlock). Error ops are eager:
// Throw discards the suspension and returns Left.
func AdvanceError[E, R any](susp *kont.Suspension[kont.Either[E, R]], wk Waker) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]], error) {
	if lop, ok := susp.Op().(lendDispatcher); ok {
		v, err := lop.DispatchLend(wk)
		if err != nil {
			var zero kont.Either[E, R]
			return zero, susp, err
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	if eop, ok := susp.Op().(errorDispatcher[E]); ok {
		var ctx kont.ErrorContext[E]
		v, _ := eop.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			return kont.Left[E, R](ctx.Err), nil, nil
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	panic("lend: unhandled effect in AdvanceError")
}
