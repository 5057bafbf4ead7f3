// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lend lends a *T to another goroutine for a bounded period while
// the lender waits for it to come back.
//
// [New] splits a pointer into a [Handle], which travels to the borrower,
// and a [Waiter], which stays with the lender. The borrower reads and
// writes through [Handle.Get] and calls [Handle.Release] when done. The
// lender calls [Waiter.Wait], which returns once the handle is released;
// from then on the lender is again the only goroutine with access.
//
// # Contract
//
//   - While a handle is in transit, the lender must not touch the pointee.
//     Pointers obtained from Get must not be used after Release.
//   - Every Waiter must be consumed by [Waiter.Wait] (or [Await]). A waiter
//     discarded while its handle is still in transit terminates the process,
//     whether explicitly via [Waiter.Discard] or implicitly when the garbage
//     collector finds it unreachable. Continuing would let the lender race
//     the borrower.
//   - A handle that is never released leaks: its waiter blocks forever.
//     Handles are never released by the garbage collector.
//
// # Architecture
//
//   - Rendezvous: [NewOneshot] is a single-value, single-use channel guarded
//     by one mutex and condition variable, with a blocking [Receiver.Recv]
//     and a cooperative [Receiver.Poll] front-end over the same state.
//   - Shared loans: [NewShared] and [Handle.Share] grant concurrent read
//     access; the waiter completes when the last clone is released.
//   - Transport: handles are ordinary values. [Conduit] moves them between
//     two goroutines over a lock-free bounded SPSC queue via
//     [code.hybscloud.com/lfq].
//   - Non-blocking: [Waiter.Poll], [Receiver.TryRecv] and conduits return
//     [code.hybscloud.com/iox.ErrWouldBlock] at the boundary.
//
// # Protocols
//
// Lending steps are also algebraic effects on [code.hybscloud.com/kont],
// so an event loop can drive them one at a time:
//
//   - Operations: [Await], [Access], [Release], [Pass], [Take].
//   - Cont-world: [AwaitBind], [AccessBind], [ReleaseThen], [ReleaseDone], [PassThen], [TakeBind].
//   - Expr-world: [ExprAwaitBind], [ExprAccessBind], etc. Bridge via [Reify] and [Reflect].
//   - Stepping: [Step] and [Advance] (or [StepError]/[AdvanceError]).
//   - Blocking: [Exec], [Run] (and Error/Expr variants) wait past boundaries using adaptive backoff.
//   - Resources: [Lease] releases a handle whether its body returns or throws.
//
// # Example
//
//	x := 1
//	h, w := lend.New(&x)
//	ch := make(chan *lend.Handle[int], 1)
//	ch <- h
//	go func() {
//		h := <-ch
//		*h.Get() += 1
//		h.Release()
//	}()
//	p := w.Wait() // x == 2, p == &x
package lend
