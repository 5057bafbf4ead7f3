// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/kont"
)

// ExprAwaitBind waits for w's handle to be released and passes the
// returned pointer to f.
// Fuses ExprPerform(Await[T]{Waiter: w}) + ExprBind.
func ExprAwaitBind[T, B any](w *Waiter[T], f func(*T) kont.Expr[B]) kont.Expr[B] {
	return kont.ExprBind(kont.ExprPerform(Await[T]{Waiter: w}), f)
}

// ExprAccessBind dereferences h and passes the pointer to f.
// Fuses ExprPerform(Access[T]{Handle: h}) + ExprBind.
func ExprAccessBind[T, B any](h *Handle[T], f func(*T) kont.Expr[B]) kont.Expr[B] {
	return kont.ExprBind(kont.ExprPerform(Access[T]{Handle: h}), f)
}

// ExprReleaseThen releases h and continues with next.
// Fuses ExprPerform(Release[T]{Handle: h}) + ExprThen.
func ExprReleaseThen[T, B any](h *Handle[T], next kont.Expr[B]) kont.Expr[B] {
	return kont.ExprThen(kont.ExprPerform(Release[T]{Handle: h}), next)
}

// ExprReleaseDone releases h and returns a.
// Fuses ExprPerform(Release[T]{Handle: h}) + ExprThen + ExprReturn.
func ExprReleaseDone[T, A any](h *Handle[T], a A) kont.Expr[A] {
	return kont.ExprThen(kont.ExprPerform(Release[T]{Handle: h}), kont.ExprReturn(a))
}

// ExprPassThen enqueues h on c and continues with next.
// Fuses ExprPerform(Pass[T]{Conduit: c, Handle: h}) + ExprThen.
func ExprPassThen[T, B any](c *Conduit[T], h *Handle[T], next kont.Expr[B]) kont.Expr[B] {
	return kont.ExprThen(kont.ExprPerform(Pass[T]{Conduit: c, Handle: h}), next)
}

// ExprTakeBind receives a handle from c and passes it to f.
// Fuses ExprPerform(Take[T]{Conduit: c}) + ExprBind.
func ExprTakeBind[T, B any](c *Conduit[T], f func(*Handle[T]) kont.Expr[B]) kont.Expr[B] {
	return kont.ExprBind(kont.ExprPerform(Take[T]{Conduit: c}), f)
}
