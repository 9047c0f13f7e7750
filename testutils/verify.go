// Package testutils holds helpers shared by the tests of this module.
package testutils

import (
	"go.uber.org/goleak"
)

// VerifyTestMain runs the package's tests and fails them if goroutines are left running afterwards.
func VerifyTestMain(m goleak.TestingM, opts ...goleak.Option) {
	goleak.VerifyTestMain(m, opts...)
}
