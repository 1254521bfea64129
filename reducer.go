package gpnode

// Reducer folds an ordered sample into a single statistic.
//
// Reducers must be pure and stateless: a single reducer value is shared
// between all nodes instantiated from the same template, possibly across
// goroutines. The result for degenerate samples (empty, too short, constant)
// is part of the reducer's contract and is passed through unchanged by
// aggregator nodes.
type Reducer interface {
	// Name identifies the statistic, e.g. "Skewness".
	Name() string
	// ReduceDouble folds a double precision sample.
	ReduceDouble(sample []float64) float64
	// ReduceFloat folds a single precision sample.
	ReduceFloat(sample []float32) float32
}

// Context is the view of a flattened program an aggregator node needs for
// evaluating its operands. Slots 0…k-1 at a node's position are maintained
// by the context; a node never allocates or frees slots itself.
//
// Both methods may recurse arbitrarily deep into the program. Any error they
// return is propagated unchanged by the calling node.
type Context interface {
	EvaluateChildDouble(pos, slot int, args []any) (float64, error)
	EvaluateChildFloat(pos, slot int, args []any) (float32, error)
}
