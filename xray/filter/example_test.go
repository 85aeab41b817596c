package filter_test

import (
	"fmt"

	"github.com/cwbudde/algo-xfilter/xray/filter"
	"github.com/cwbudde/algo-xfilter/xray/material"
	"github.com/cwbudde/algo-xfilter/xray/spectrum"
)

func ExampleFilter() {
	w := material.NewRecord("W", 1, 19.35, material.InMemoryArrays{
		Energy: []float64{0.8, 1.0, 1.25},
		MAC:    []float64{8.066e-02, 6.618e-02, 5.577e-02},
	})
	beam, _ := spectrum.New([]float64{1.0, 1.0}, []float64{100, 100})

	res, err := filter.Filter(beam, material.NewStack(w))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("T=%.4f out=%.2f %.2f\n", res.Transmission[0], res.CountsOut[0], res.CountsOut[1])
	// Output:
	// T=0.8798 out=87.98 87.98
}
