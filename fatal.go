// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lend

import (
	"os"
	"reflect"
)

// exitFatal is the exit status used for protocol violations, matching
// the status the Go runtime uses for fatal errors.
const exitFatal = 2

// fatal writes msg to stderr and terminates the process.
// It does not unwind: deferred functions do not run and recover cannot
// intercept it.
var fatal = func(msg string) {
	os.Stderr.WriteString(msg + "\n")
	os.Exit(exitFatal)
}

// waiterName renders the waiter type for diagnostics, e.g. "Waiter[int]".
func waiterName[T any]() string {
	return "Waiter[" + reflect.TypeFor[T]().String() + "]"
}
