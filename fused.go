// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/kont"
)

// AwaitBind waits for w's handle to be released and passes the
// returned pointer to f.
// Fuses Perform(Await[T]{Waiter: w}) + Bind.
func AwaitBind[T, B any](w *Waiter[T], f func(*T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Await[T]{Waiter: w}), f)
}

// AccessBind dereferences h and passes the pointer to f.
// Fuses Perform(Access[T]{Handle: h}) + Bind.
func AccessBind[T, B any](h *Handle[T], f func(*T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Access[T]{Handle: h}), f)
}

// ReleaseThen releases h and continues with next.
// Fuses Perform(Release[T]{Handle: h}) + Then.
func ReleaseThen[T, B any](h *Handle[T], next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Release[T]{Handle: h}), next)
}

// ReleaseDone releases h and returns a.
// Fuses Perform(Release[T]{Handle: h}) + Then + Pure.
func ReleaseDone[T, A any](h *Handle[T], a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Release[T]{Handle: h}), kont.Pure(a))
}

// PassThen enqueues h on c and continues with next.
// Fuses Perform(Pass[T]{Conduit: c, Handle: h}) + Then.
func PassThen[T, B any](c *Conduit[T], h *Handle[T], next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Pass[T]{Conduit: c, Handle: h}), next)
}

// TakeBind receives a handle from c and passes it to f.
// Fuses Perform(Take[T]{Conduit: c}) + Bind.
func TakeBind[T, B any](c *Conduit[T], f func(*Handle[T]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Take[T]{Conduit: c}), f)
}
