/*
Package gpnode implements dynamic-arity aggregator nodes for flattened
genetic programs.

Aggregator Nodes

A genetic program is stored as a flattened tree: nodes are laid out in
prefix order, and each function node consumes the next subtrees as its
operands. Most functions have a fixed number of operands. An aggregator
node does not; its arity is chosen per instance from a configured range
[min, max] and may be changed by the evolutionary loop later on.

At evaluation time an aggregator walks its child slots in ascending order,
evaluates each of them to a scalar and folds the resulting sample into a
single statistic, e.g., the skewness of the sample. Folding is done by a
Reducer, a pure function from a sample to a scalar. Reducers for common
statistics live in package stats.

Programs may be evaluated in double or in single precision. Both paths are
kept separate end to end, i.e., a single-precision evaluation never
computes in float64 and narrows the result afterwards.

Nodes do not own their children. Child slots are addressed through a
Context, which is implemented by the program representation (see package
program for a reference implementation).

Cloning

Every node is instantiated from a Template, which holds the node's
configured arity bounds, its return type and its reducer. Clones are
instantiated from the same template, thus a clone starts out with the
initial arity and stays eligible for the full range of arity mutations,
regardless of the arity the original has reached.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.

*/
package gpnode

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
