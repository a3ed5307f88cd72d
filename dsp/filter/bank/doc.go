// Package bank builds fractional-octave filter banks.
//
// Band centres follow IEC 61260 (base-10 system):
//
//	G        = 10^(3/10)
//	f_exact  = 1000 * G^(x/b)        for 1/b-octave bands
//	f_upper  = f_exact * G^(1/(2b))
//	f_lower  = f_exact * G^(-1/(2b))
//
// Octave and third-octave grids carry the nominal values of the standard;
// other fractions are spaced in powers of two around 1 kHz. See
// [Frequencies].
//
// Two bank types are provided:
//
//   - [EnergyPreservingBank] uses a Butterworth bandpass cascade per band
//     with -3 dB edges. The squared band magnitudes sum to one, so band
//     energies add up to the input energy. A band whose upper edge reaches
//     the Nyquist frequency becomes a highpass.
//   - [ReconstructingBank] uses linear-phase FIR filters with -6 dB edges
//     and complementary sine/cosine crossovers. The band outputs sum to the
//     input delayed by half the filter length.
//
// Bands that cannot be realised at the sampling rate are dropped or
// degraded and reported as [Diagnostic] values, logged through log/slog.
// They never cause an error; [EnergyPreservingBank.NumBands] reflects them.
//
// Banks persist only their constructor parameters (JSON and YAML) and are
// redesigned when decoded.
//
// Basic usage:
//
//	fb, err := bank.NewEnergyPreserving(bank.WithFractions(3), bank.WithSampleRate(48000))
//	if err != nil {
//	    return err
//	}
//	bands, err := fb.Process(sig) // shape (fb.NumBands(), sig.Shape()...)
package bank
