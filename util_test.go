package numerics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats up to an absolute error of margin and treats NaNs as
// equal to each other.
func approx(margin float64) cmp.Option {
	return cmp.Options{cmpopts.EquateApprox(0, margin), cmpopts.EquateNaNs()}
}
