package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestStep(t *testing.T) {
	test.That(t, Step(-0.1), test.ShouldEqual, 0.)
	test.That(t, Step(0), test.ShouldEqual, 1.)
	test.That(t, Step(2), test.ShouldEqual, 1.)
}
