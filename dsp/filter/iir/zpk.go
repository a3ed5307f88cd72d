package iir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"sort"

	"github.com/cwbudde/algo-acoustics/dsp/filter/biquad"
)

// ErrUnpairedRoot reports a complex root without a matching conjugate.
var ErrUnpairedRoot = errors.New("iir: complex root without conjugate")

const machEps = 2.220446049250313e-16

// realTol is the relative imaginary part below which a root counts as real.
const realTol = 100 * machEps

// pairTol bounds the mismatch between a root and its partner's conjugate.
const pairTol = 1e-9

// ZPK is a transfer function in zero/pole/gain form:
//
//	H(s) = Gain * prod(s - Zeros[i]) / prod(s - Poles[i])
//
// Complex roots must come in conjugate pairs.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Degree returns the number of poles in excess of zeros.
func (f ZPK) Degree() int {
	return len(f.Poles) - len(f.Zeros)
}

// Clone returns a deep copy of f.
func (f ZPK) Clone() ZPK {
	return ZPK{Zeros: slices.Clone(f.Zeros), Poles: slices.Clone(f.Poles), Gain: f.Gain}
}

// ToSections factors a digital ZPK into biquad sections.
//
// Odd pole counts are padded with a pole and a zero at the origin. Poles are
// taken in order of increasing distance from the unit circle and each one is
// matched with its nearest zeros; the resulting sections are emitted in
// reverse so that the sections holding the poles closest to the unit circle
// come last. Gain scales the numerator of the first section.
func (f ZPK) ToSections() ([]biquad.Coefficients, error) {
	if len(f.Zeros) == 0 && len(f.Poles) == 0 {
		return []biquad.Coefficients{{B0: f.Gain}}, nil
	}

	z := slices.Clone(f.Zeros)
	p := slices.Clone(f.Poles)

	for len(p) < len(z) {
		p = append(p, 0)
	}

	for len(z) < len(p) {
		z = append(z, 0)
	}

	nSections := (len(p) + 1) / 2
	if len(p)%2 == 1 {
		p = append(p, 0)
		z = append(z, 0)
	}

	z, err := reduceConjugates(z)
	if err != nil {
		return nil, fmt.Errorf("zeros: %w", err)
	}

	p, err = reduceConjugates(p)
	if err != nil {
		return nil, fmt.Errorf("poles: %w", err)
	}

	pSOS := make([][2]complex128, nSections)
	zSOS := make([][2]complex128, nSections)

	for si := range nSections {
		idx := worstPole(p)
		p1 := p[idx]
		p = slices.Delete(p, idx, idx+1)

		switch {
		case isReal(p1) && countReal(p) == 0:
			// last remaining real pole
			z1 := takeNearest(&z, p1, pickReal)
			pSOS[si] = [2]complex128{p1, 0}
			zSOS[si] = [2]complex128{z1, 0}

		case len(p)+1 == len(z) && !isReal(p1) && countReal(p) == 1 && countReal(z) == 1:
			// one real pole and one real zero left over: this pole must
			// take a complex zero
			z1 := takeNearest(&z, p1, pickComplex)
			pSOS[si] = [2]complex128{p1, cmplx.Conj(p1)}
			zSOS[si] = [2]complex128{z1, cmplx.Conj(z1)}

		default:
			p2 := cmplx.Conj(p1)
			if isReal(p1) {
				p2 = takeNearest(&p, p1, pickReal)
			}

			pSOS[si] = [2]complex128{p1, p2}

			if len(z) == 0 {
				continue
			}

			z1 := takeNearest(&z, p1, pickAny)

			switch {
			case !isReal(z1):
				zSOS[si] = [2]complex128{z1, cmplx.Conj(z1)}
			case len(z) > 0:
				zSOS[si] = [2]complex128{z1, takeNearest(&z, p1, pickReal)}
			default:
				zSOS[si] = [2]complex128{z1, 0}
			}
		}
	}

	out := make([]biquad.Coefficients, nSections)
	for i := range out {
		src := nSections - 1 - i
		b1, b2 := quadratic(zSOS[src])
		a1, a2 := quadratic(pSOS[src])
		out[i] = biquad.Coefficients{B0: 1, B1: b1, B2: b2, A1: a1, A2: a2}
	}

	out[0].B0 *= f.Gain
	out[0].B1 *= f.Gain
	out[0].B2 *= f.Gain

	return out, nil
}

// reduceConjugates keeps one root of every conjugate pair (the one with
// positive imaginary part) followed by all real roots. Complex roots are
// ordered by real part, then magnitude of the imaginary part; real roots
// ascend. Real roots get an exactly zero imaginary part.
func reduceConjugates(roots []complex128) ([]complex128, error) {
	sorted := slices.Clone(roots)
	sort.SliceStable(sorted, func(i, j int) bool {
		if real(sorted[i]) != real(sorted[j]) {
			return real(sorted[i]) < real(sorted[j])
		}

		return math.Abs(imag(sorted[i])) < math.Abs(imag(sorted[j]))
	})

	var pos, neg, reals []complex128

	for _, r := range sorted {
		switch {
		case math.Abs(imag(r)) <= realTol*cmplx.Abs(r):
			reals = append(reals, complex(real(r), 0))
		case imag(r) > 0:
			pos = append(pos, r)
		default:
			neg = append(neg, r)
		}
	}

	if len(pos) != len(neg) {
		return nil, fmt.Errorf("%w: %d upper vs %d lower half-plane roots", ErrUnpairedRoot, len(pos), len(neg))
	}

	used := make([]bool, len(neg))
	out := make([]complex128, 0, len(pos)+len(reals))

	for _, r := range pos {
		best, bestDist := -1, math.Inf(1)

		for j, n := range neg {
			if used[j] {
				continue
			}

			if d := cmplx.Abs(r - cmplx.Conj(n)); d < bestDist {
				best, bestDist = j, d
			}
		}

		if bestDist > pairTol*(1+cmplx.Abs(r)) {
			return nil, fmt.Errorf("%w: %v", ErrUnpairedRoot, r)
		}

		used[best] = true
		out = append(out, (r+cmplx.Conj(neg[best]))/2)
	}

	return append(out, reals...), nil
}

func isReal(c complex128) bool {
	return imag(c) == 0
}

func countReal(roots []complex128) int {
	n := 0
	for _, r := range roots {
		if isReal(r) {
			n++
		}
	}

	return n
}

// worstPole returns the index of the pole closest to the unit circle.
func worstPole(p []complex128) int {
	best, bestDist := 0, math.Inf(1)
	for i, r := range p {
		if d := math.Abs(1 - cmplx.Abs(r)); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

type rootKind int

const (
	pickAny rootKind = iota
	pickReal
	pickComplex
)

// takeNearest removes and returns the root of the requested kind nearest to
// target. The origin stands in when no such root is left.
func takeNearest(roots *[]complex128, target complex128, kind rootKind) complex128 {
	best, bestDist := -1, math.Inf(1)

	for i, r := range *roots {
		if (kind == pickReal && !isReal(r)) || (kind == pickComplex && isReal(r)) {
			continue
		}

		if d := cmplx.Abs(r - target); d < bestDist {
			best, bestDist = i, d
		}
	}

	if best < 0 {
		return 0
	}

	r := (*roots)[best]
	*roots = slices.Delete(*roots, best, best+1)

	return r
}

// quadratic expands (1 - r0 z^-1)(1 - r1 z^-1) into [1, c1, c2].
func quadratic(r [2]complex128) (float64, float64) {
	return -real(r[0] + r[1]), real(r[0] * r[1])
}

func prodNeg(roots []complex128) complex128 {
	out := complex(1, 0)
	for _, r := range roots {
		out *= -r
	}

	return out
}
