// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"code.hybscloud.com/kont"
)

// Lease dereferences h, runs use on the pointer, then releases h whether
// use returned normally or threw an error of type E.
// Returns Right with use's result, or Left with the thrown error.
//
// use runs under an error-only handler (kont.Bracket): it may throw but
// must not perform lending effects itself.
func Lease[E, T, A any](h *Handle[T], use func(*T) kont.Eff[A]) kont.Eff[kont.Either[E, A]] {
	return kont.Bracket[E, *T, A](
		kont.Perform(Access[T]{Handle: h}),
		func(*T) kont.Eff[struct{}] {
			return kont.Perform(Release[T]{Handle: h})
		},
		use,
	)
}
