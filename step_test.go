// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend_test

import (
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lend"
)

func TestStepAdvanceAwait(t *testing.T) {
	x := 1
	h, w := lend.New(&x)
	lender := lend.ExprAwaitBind(w, func(p *int) kont.Expr[int] {
		return kont.ExprReturn(*p)
	})

	_, susp := lend.Step[int](lender)
	if susp == nil {
		t.Fatal("expected suspension for Await")
	}
	if _, ok := susp.Op().(lend.Await[int]); !ok {
		t.Fatalf("expected Await[int], got %T", susp.Op())
	}

	// Advance returns iox.ErrWouldBlock while the handle is in transit, retryable
	_, susp, err := lend.Advance(susp, nil)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}
	if susp == nil {
		t.Fatal("suspension consumed on ErrWouldBlock")
	}

	*h.Get() = 8
	h.Release()

	result, susp, err := lend.Advance(susp, nil)
	if err != nil {
		t.Fatalf("Advance after release: %v", err)
	}
	if susp != nil {
		t.Fatal("expected completion after Await")
	}
	if result != 8 {
		t.Fatalf("got %d, want 8", result)
	}
}

func TestAdvanceRegistersWaker(t *testing.T) {
	x := 0
	h, w := lend.New(&x)
	took, gate := borrowGated(h, func(p *int) { *p = 11 })
	<-took

	lender := lend.ExprAwaitBind(w, func(p *int) kont.Expr[int] {
		return kont.ExprReturn(*p)
	})
	_, susp := lend.Step[int](lender)

	wk := newCountingWaker()
	_, susp, err := lend.Advance(susp, wk)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}

	close(gate)
	wk.awaitWake(t)

	result, susp, err := lend.Advance(susp, wk)
	if err != nil {
		t.Fatalf("Advance after wake: %v", err)
	}
	if susp != nil || result != 11 {
		t.Fatalf("got (%d, %v), want (11, nil)", result, susp)
	}
	if n := wk.n.Load(); n != 1 {
		t.Fatalf("waker invoked %d times, want 1", n)
	}
}

func TestStepInspectBorrowerOperations(t *testing.T) {
	x := 0
	h, w := lend.New(&x)
	borrower := lend.ExprAccessBind(h, func(p *int) kont.Expr[string] {
		*p = 5
		return lend.ExprReleaseDone(h, "done")
	})

	_, susp := lend.Step[string](borrower)
	if _, ok := susp.Op().(lend.Access[int]); !ok {
		t.Fatalf("expected Access[int], got %T", susp.Op())
	}
	_, susp, err := lend.Advance(susp, nil)
	if err != nil {
		t.Fatalf("Advance Access: %v", err)
	}
	if _, ok := susp.Op().(lend.Release[int]); !ok {
		t.Fatalf("expected Release[int], got %T", susp.Op())
	}
	if w.TryWait() {
		t.Fatal("waiter ready before Release dispatched")
	}
	result, susp, err := lend.Advance(susp, nil)
	if err != nil {
		t.Fatalf("Advance Release: %v", err)
	}
	if susp != nil || result != "done" {
		t.Fatalf("got (%q, %v), want (\"done\", nil)", result, susp)
	}
	if p := w.Wait(); *p != 5 {
		t.Fatalf("x = %d, want 5", *p)
	}
}

func TestStepAdvanceReleaseThen(t *testing.T) {
	x := 0
	h, w := lend.New(&x)
	borrower := lend.ExprReleaseThen(h, kont.ExprReturn(1))

	if got := execExpr(borrower); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	if !w.TryWait() {
		t.Fatal("handle not released")
	}
	w.Wait()
}

func TestStepAdvancePassTake(t *testing.T) {
	skipRace(t)
	c := lend.NewConduit[int](4)
	x := 1
	h, w := lend.New(&x)

	lender := lend.ExprPassThen(c, h, lend.ExprAwaitBind(w, func(p *int) kont.Expr[int] {
		return kont.ExprReturn(*p)
	}))
	borrower := lend.ExprTakeBind(c, func(h *lend.Handle[int]) kont.Expr[int] {
		return lend.ExprAccessBind(h, func(p *int) kont.Expr[int] {
			*p *= 10
			return lend.ExprReleaseDone(h, *p)
		})
	})

	_, susp := lend.Step[int](borrower)
	if _, ok := susp.Op().(lend.Take[int]); !ok {
		t.Fatalf("expected Take[int], got %T", susp.Op())
	}
	_, susp, err := lend.Advance(susp, nil)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("Take on empty conduit: expected ErrWouldBlock, got %v", err)
	}

	_, lsusp := lend.Step[int](lender)
	if _, ok := lsusp.Op().(lend.Pass[int]); !ok {
		t.Fatalf("expected Pass[int], got %T", lsusp.Op())
	}
	_, lsusp, err = lend.Advance(lsusp, nil)
	if err != nil {
		t.Fatalf("Advance Pass: %v", err)
	}

	borrowed := 0
	for susp != nil {
		borrowed, susp, err = lend.Advance(susp, nil)
		if err != nil {
			t.Fatalf("Advance borrower: %v", err)
		}
	}
	lent, lsusp, err := lend.Advance(lsusp, nil)
	if err != nil || lsusp != nil {
		t.Fatalf("Advance Await: (%v, %v)", lsusp, err)
	}
	if borrowed != 10 || lent != 10 {
		t.Fatalf("borrowed %d, lent %d, want 10, 10", borrowed, lent)
	}
}

func TestAdvanceUnhandledEffectPanics(t *testing.T) {
	_, susp := lend.Step[int](kont.ExprThrowError[string, int]("boom"))
	defer func() {
		if recover() == nil {
			t.Fatal("Advance on foreign effect did not panic")
		}
	}()
	lend.Advance(susp, nil)
}
