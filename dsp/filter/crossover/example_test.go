package crossover_test

import (
	"fmt"

	"github.com/cwbudde/algo-acoustics/dsp/filter/crossover"
)

func ExampleNew() {
	xo, err := crossover.New(1000, 4, 48000)
	if err != nil {
		panic(err)
	}

	for _, f := range []float64{100, 1000, 10000} {
		fmt.Printf("%5.0f Hz: lo %6.2f dB  hi %6.2f dB\n", f,
			xo.LP().MagnitudeDB(f, 48000), xo.HP().MagnitudeDB(f, 48000))
	}
	// Output:
	//   100 Hz: lo  -0.00 dB  hi -80.05 dB
	//  1000 Hz: lo  -6.02 dB  hi  -6.02 dB
	// 10000 Hz: lo -85.48 dB  hi  -0.00 dB
}

func ExampleMultiBand_Comment() {
	mb, err := crossover.NewMultiBand([]float64{100, 10000}, 2, 44100)
	if err != nil {
		panic(err)
	}

	fmt.Println(mb.NumBands(), "bands")
	fmt.Println(mb.Comment())
	// Output:
	// 3 bands
	// Linkwitz-Riley cross over network of order 2 at 100, 10000 Hz.
}
