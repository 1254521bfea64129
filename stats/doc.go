/*
Package stats provides reducers which fold a sample of numeric values into
a single statistic.

Every reducer is a stateless value type implementing

	Name() string
	ReduceDouble(sample []float64) float64
	ReduceFloat(sample []float32) float32

which makes it usable as a gpnode.Reducer. The formulas are implemented
once, generic over the floating point kind, so the single precision
variants compute in float32 throughout.

Degenerate samples yield NaN rather than an error. A sample too short for
a statistic to be defined is not an exceptional condition during the
evaluation of a randomly generated program.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package stats
