package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-xfilter/xray/core"
)

func ExampleEnsureLen() {
	buf := make([]float64, 2, 4)
	buf[0], buf[1] = 1, 2
	out := core.EnsureLen(buf, 4)
	fmt.Println(len(out), cap(out), out[:2])

	// Output:
	// 4 4 [1 2]
}

func ExampleClampNonNegative() {
	counts := []float64{12, -0.4, 7}
	n := core.ClampNonNegative(counts, counts)
	fmt.Println(n, counts)

	// Output:
	// 1 [12 0 7]
}
