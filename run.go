// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run runs two Cont-world protocols, typically a lender and a borrower,
// and returns both results. Interleaves execution of both sides on the
// calling goroutine using adaptive backoff (iox.Backoff) when neither
// side can make progress. Does not spawn goroutines or create channels.
//
// A lender suspended on Await yields to the borrower, so a loan can be
// made and returned entirely within one goroutine.
func Run[A, B any](a kont.Eff[A], b kont.Eff[B]) (A, B) {
	return RunExpr(Reify(a), Reify(b))
}

// RunExpr runs two Expr-world protocols and returns both results.
// Interleaves execution of both sides on the calling goroutine using
// adaptive backoff (iox.Backoff) when neither side can make progress.
// Does not spawn goroutines or create channels.
func RunExpr[A, B any](a kont.Expr[A], b kont.Expr[B]) (A, B) {
	resultA, suspA := Step[A](a)
	resultB, suspB := Step[B](b)
	var bo iox.Backoff

	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance(suspA, nil)
			if err == nil {
				progress = true
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance(suspB, nil)
			if err == nil {
				progress = true
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultA, resultB
}
