package stats

import (
	"math"
	"sort"
)

// Float is the set of floating point kinds the statistics are defined for.
type Float interface {
	~float32 | ~float64
}

// nearZeroVariance is the variance below which a sample is treated as
// constant for skewness and kurtosis.
const nearZeroVariance = 10e-20

func nan[T Float]() T {
	return T(math.NaN())
}

func sqrt[T Float](x T) T {
	return T(math.Sqrt(float64(x)))
}

// mean returns the arithmetic mean, NaN for an empty sample.
func mean[T Float](x []T) T {
	if len(x) == 0 {
		return nan[T]()
	}
	var sum T
	for _, v := range x {
		sum += v
	}
	return sum / T(len(x))
}

// variance returns the bias-corrected sample variance, NaN for n < 2.
func variance[T Float](x []T) T {
	if len(x) < 2 {
		return nan[T]()
	}
	m := mean(x)
	var sum T
	for _, v := range x {
		d := v - m
		sum += d * d
	}
	return sum / T(len(x)-1)
}

// skewness returns the bias-corrected sample skewness
//
//	g = n / ((n-1)(n-2)) · Σ(x-μ)³ / s³
//
// It is NaN for n < 3, where the coefficient is undefined, and 0 for samples
// with (nearly) zero variance.
func skewness[T Float](x []T) T {
	n := len(x)
	if n < 3 {
		return nan[T]()
	}
	m := mean(x)
	v := variance(x)
	if v < nearZeroVariance {
		return 0
	}
	var accum T
	for _, xi := range x {
		d := xi - m
		accum += d * d * d
	}
	s := sqrt(v)
	fn := T(n)
	return (fn / ((fn - 1) * (fn - 2))) * accum / (s * s * s)
}

// kurtosis returns the bias-corrected excess kurtosis
//
//	G = n(n+1) / ((n-1)(n-2)(n-3)) · Σ(x-μ)⁴ / s⁴ − 3(n-1)² / ((n-2)(n-3))
//
// It is NaN for n < 4 and 0 for samples with (nearly) zero variance.
func kurtosis[T Float](x []T) T {
	n := len(x)
	if n < 4 {
		return nan[T]()
	}
	m := mean(x)
	v := variance(x)
	if v < nearZeroVariance {
		return 0
	}
	var accum T
	for _, xi := range x {
		d := xi - m
		accum += d * d * d * d
	}
	fn := T(n)
	coeff := (fn * (fn + 1)) / ((fn - 1) * (fn - 2) * (fn - 3))
	term := (3 * (fn - 1) * (fn - 1)) / ((fn - 2) * (fn - 3))
	return coeff*accum/(v*v) - term
}

// median returns the median of x without modifying it, NaN for an empty sample.
func median[T Float](x []T) T {
	n := len(x)
	if n == 0 {
		return nan[T]()
	}
	sorted := make([]T, n)
	copy(sorted, x)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
