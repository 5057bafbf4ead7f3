// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend_test

import (
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/lend"
)

// BenchmarkLendLocal measures a loan made and returned on one goroutine.
func BenchmarkLendLocal(b *testing.B) {
	b.ReportAllocs()
	x := 0
	for b.Loop() {
		h, w := lend.New(&x)
		*h.Get() += 1
		h.Release()
		w.Wait()
	}
}

// BenchmarkLendAcrossGoroutines measures a round trip to a borrower goroutine.
func BenchmarkLendAcrossGoroutines(b *testing.B) {
	b.ReportAllocs()
	ch := make(chan *lend.Handle[int])
	go func() {
		for h := range ch {
			*h.Get() += 1
			h.Release()
		}
	}()
	defer close(ch)

	x := 0
	for b.Loop() {
		h, w := lend.New(&x)
		ch <- h
		w.Wait()
	}
}

// BenchmarkLendConduit measures a round trip through an SPSC conduit.
func BenchmarkLendConduit(b *testing.B) {
	skipRace(b)
	b.ReportAllocs()
	c := lend.NewConduit[int](4)
	stop := make(chan struct{})
	go func() {
		for {
			h, err := c.TryRecv()
			if err != nil {
				select {
				case <-stop:
					return
				default:
					continue
				}
			}
			*h.Get() += 1
			h.Release()
		}
	}()
	defer close(stop)

	x := 0
	for b.Loop() {
		h, w := lend.New(&x)
		c.Send(h)
		w.Wait()
	}
}

// BenchmarkOneshot measures a single send/recv on one goroutine.
func BenchmarkOneshot(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		tx, rx := lend.NewOneshot[int]()
		tx.Send(1)
		rx.Recv()
	}
}

// BenchmarkRunLoan measures a lender/borrower pair interleaved by Run.
func BenchmarkRunLoan(b *testing.B) {
	skipRace(b)
	b.ReportAllocs()
	c := lend.NewConduit[int](4)
	x := 0
	for b.Loop() {
		h, w := lend.New(&x)
		lend.Run[int, int](lender(c, h, w), borrower(c, func(v int) int { return v + 1 }))
	}
}

// BenchmarkExecExprAccessRelease measures an Expr-world borrower on one goroutine.
func BenchmarkExecExprAccessRelease(b *testing.B) {
	b.ReportAllocs()
	x := 0
	for b.Loop() {
		h, w := lend.New(&x)
		lend.ExecExpr(lend.ExprAccessBind(h, func(p *int) kont.Expr[int] {
			*p++
			return lend.ExprReleaseDone(h, *p)
		}))
		w.Wait()
	}
}
