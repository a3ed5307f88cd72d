package iir

import (
	"fmt"
	"math"
	"math/cmplx"
)

const (
	landenTol      = 2.2e-16
	nomeTerms      = 7
	arcSNMaxIter   = 10
	arcSNImagCheck = 1e-7
)

// EllipticPrototype returns the analog elliptic (Cauer) lowpass of order n
// with rippleDB of passband ripple ending at 1 rad/s and at least
// attenuationDB of stopband attenuation.
func EllipticPrototype(n int, rippleDB, attenuationDB float64) (ZPK, error) {
	if n < 1 {
		return ZPK{}, fmt.Errorf("%w: %d", ErrInvalidOrder, n)
	}

	if rippleDB <= 0 || attenuationDB <= rippleDB {
		return ZPK{}, fmt.Errorf("%w: ripple %v dB, attenuation %v dB", ErrInvalidRipple, rippleDB, attenuationDB)
	}

	epsSq := dbMinusOne(rippleDB)
	m1 := epsSq / dbMinusOne(attenuationDB)

	if n == 1 {
		p := -math.Sqrt(1 / epsSq)
		return ZPK{Poles: []complex128{complex(p, 0)}, Gain: -p}, nil
	}

	m := ellipticDegree(n, m1)
	if !(m > 0 && m < 1) {
		return ZPK{}, fmt.Errorf("%w: degree equation has no solution for order %d", ErrInvalidRipple, n)
	}

	kmod := math.Sqrt(m)
	capK := ellipK(kmod)
	capK1 := ellipK(math.Sqrt(m1))

	var (
		zeros []complex128
		sn    []float64
		cn    []float64
		dn    []float64
	)

	for j := 1 - n%2; j < n; j += 2 {
		s, c, d := jacobiSCD(float64(j)*capK/float64(n), kmod)
		sn = append(sn, s)
		cn = append(cn, c)
		dn = append(dn, d)

		if math.Abs(s) > machEps {
			z := complex(0, 1) / complex(kmod*s, 0)
			zeros = append(zeros, z, cmplx.Conj(z))
		}
	}

	r := arcSC1(1/math.Sqrt(epsSq), m1)
	if !(r > 0) || math.IsInf(r, 0) {
		return ZPK{}, fmt.Errorf("%w: inverse jacobi sc did not converge", ErrInvalidRipple)
	}

	v0 := capK * r / (float64(n) * capK1)
	sv, cv, dv := jacobiSCD(v0, math.Sqrt(1-m))

	poles := make([]complex128, 0, n)
	for i := range sn {
		den := 1 - (dn[i]*sv)*(dn[i]*sv)
		p := -complex(cn[i]*dn[i]*sv*cv, sn[i]*dv) / complex(den, 0)

		poles = append(poles, p)
		if n%2 == 0 || math.Abs(imag(p)) > machEps*cmplx.Abs(p) {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	gain := real(prodNeg(poles) / prodNeg(zeros))
	if n%2 == 0 {
		gain /= math.Sqrt(1 + epsSq)
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: gain}, nil
}

// dbMinusOne is 10^(db/10) - 1 without cancellation for small db.
func dbMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10)
}

// landen returns the descending Landen moduli of k down to landenTol.
func landen(k float64) []float64 {
	if k == 0 || k == 1 {
		return []float64{k}
	}

	var v []float64
	for k > landenTol {
		t := k / (1 + math.Sqrt((1-k)*(1+k)))
		k = t * t
		v = append(v, k)
	}

	return v
}

// ellipK is the complete elliptic integral of the first kind for modulus k.
func ellipK(k float64) float64 {
	const kmin = 1e-6

	kmax := math.Sqrt(1 - kmin*kmin)

	switch {
	case k == 1:
		return math.Inf(1)
	case k > kmax:
		kp := math.Sqrt((1 - k) * (1 + k))
		l := -math.Log(kp / 4)

		return l + (l-1)*kp*kp/4
	}

	prod := 1.0
	for _, x := range landen(k) {
		prod *= 1 + x
	}

	return prod * math.Pi / 2
}

// jacobiSCD evaluates sn, cn and dn at a real argument u for modulus k.
func jacobiSCD(u, k float64) (sn, cn, dn float64) {
	v := landen(k)
	un := u / ellipK(k)

	sn = math.Sin(un * math.Pi / 2)
	cd := math.Cos(un * math.Pi / 2)

	for i := len(v) - 1; i >= 0; i-- {
		sn = (1 + v[i]) * sn / (1 + v[i]*sn*sn)
		cd = (1 + v[i]) * cd / (1 + v[i]*cd*cd)
	}

	dn = math.Sqrt(max(1-k*k*sn*sn, 0))
	cn = cd * dn

	return sn, cn, dn
}

// arcSC1 inverts the jacobi sc function at w for the complementary
// parameter m.
func arcSC1(w, m float64) float64 {
	z := arcSN(complex(0, w), m)
	if math.Abs(real(z)) > arcSNImagCheck*math.Max(1, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1 - k) * (1 + k))
}

// arcSN is the inverse jacobi sn function via descending Landen steps.
func arcSN(w complex128, m float64) complex128 {
	if m < 0 || m > 1 {
		return cmplx.NaN()
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcSNMaxIter - 1 {
		kn := ks[len(ks)-1]
		if kn == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1-kp)/(1+kp))
	}

	capK := math.Pi / 2
	for _, kn := range ks[1:] {
		capK *= real(1 + kn)
	}

	for i := range len(ks) - 1 {
		w = 2 * w / ((1 + ks[i+1]) * (1 + complement(ks[i]*w)))
	}

	return complex(capK, 0) * complex(2/math.Pi, 0) * cmplx.Asin(w)
}

// ellipticDegree solves the degree equation for order n and selectivity
// parameter m1 with a truncated nome series.
func ellipticDegree(n int, m1 float64) float64 {
	if !(m1 > 0 && m1 < 1) {
		return math.NaN()
	}

	k1 := ellipK(math.Sqrt(m1))
	k1p := ellipK(math.Sqrt(1 - m1))

	q := math.Pow(math.Exp(-math.Pi*k1p/k1), 1/float64(n))

	num, den := 0.0, 1.0
	for i := range nomeTerms {
		num += math.Pow(q, float64(i*(i+1)))
		if i > 0 {
			den += 2 * math.Pow(q, float64(i*i))
		}
	}

	return 16 * q * math.Pow(num/den, 4)
}
