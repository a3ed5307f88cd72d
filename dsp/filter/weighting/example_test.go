package weighting_test

import (
	"fmt"

	"github.com/cwbudde/algo-acoustics/dsp/filter/weighting"
)

func ExampleNew() {
	chain, err := weighting.New(weighting.TypeA, 48000)
	if err != nil {
		panic(err)
	}

	for _, freq := range []float64{100, 4000, 10000} {
		fmt.Printf("%6.0f Hz: %+.1f dB\n", freq, chain.MagnitudeDB(freq, 48000))
	}
	// Output:
	//    100 Hz: -19.2 dB
	//   4000 Hz: +1.3 dB
	//  10000 Hz: -1.9 dB
}

func ExampleCorrection() {
	for _, freq := range []float64{63, 125, 250} {
		c, _ := weighting.Correction(weighting.TypeA, freq)
		fmt.Printf("%3.0f Hz: %+.1f dB\n", freq, c)
	}
	// Output:
	//  63 Hz: -26.2 dB
	// 125 Hz: -16.2 dB
	// 250 Hz: -8.7 dB
}
