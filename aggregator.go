package gpnode

import (
	"fmt"
	"math/rand"
)

// Aggregator is a dynamic-arity node which reduces the values of its child
// slots to a single statistic.
//
// An Aggregator has no phases; its only mutable state is the current arity.
// Evaluation does not touch the node's state and may run concurrently for
// disjoint programs. Changing the arity must not overlap with evaluating the
// program the node belongs to.
type Aggregator struct {
	tmpl  Template
	arity ArityPolicy
}

// NewAggregator instantiates a node from a template. It returns
// ErrInvalidConfiguration if the template is incomplete or its arity bounds
// are malformed.
func NewAggregator(tmpl Template) (*Aggregator, error) {
	tmpl = tmpl.normalized()
	if err := tmpl.validate(); err != nil {
		T().Errorf("aggregator: %s", err.Error())
		return nil, err
	}
	arity, err := NewArityPolicy(tmpl.Initial, tmpl.Min, tmpl.Max)
	if err != nil {
		return nil, err
	}
	T().Debugf("aggregator: new %s node with %s", tmpl.Name, arity)
	return &Aggregator{tmpl: tmpl, arity: arity}, nil
}

// NewStatistic creates a statistic node, applying DefaultOperandOffset to the
// arity bounds.
func NewStatistic(rt ReturnType, reducer Reducer, initial, min, max int) (*Aggregator, error) {
	tmpl, err := StatisticTemplate(rt, reducer, DefaultOperandOffset, initial, min, max)
	if err != nil {
		return nil, err
	}
	return NewAggregator(tmpl)
}

// Name returns the node's identifier.
func (agg *Aggregator) Name() string {
	return agg.tmpl.Name
}

// ReturnType returns the numeric kind the node evaluates to.
func (agg *Aggregator) ReturnType() ReturnType {
	return agg.tmpl.ReturnType
}

// Arity returns the number of child slots the node currently consumes.
func (agg *Aggregator) Arity() int {
	return agg.arity.Current()
}

// SetArity changes the number of child slots. The caller is responsible for
// adjusting the program layout accordingly.
func (agg *Aggregator) SetArity(n int) error {
	if err := agg.arity.SetCurrent(n); err != nil {
		T().Debugf("aggregator: %s rejects arity mutation: %v", agg.tmpl.Name, err)
		return err
	}
	return nil
}

// MutateArity sets the arity to a random value within the node's bounds.
func (agg *Aggregator) MutateArity(rnd *rand.Rand) error {
	return agg.arity.Randomize(rnd)
}

// ArityPolicy returns a copy of the node's arity policy.
func (agg *Aggregator) ArityPolicy() ArityPolicy {
	return agg.arity
}

// Template returns the blueprint the node has been instantiated from.
func (agg *Aggregator) Template() Template {
	return agg.tmpl
}

// Clone creates a fresh node from the template of agg. The clone starts with
// the initial arity, not with the current arity of agg.
func (agg *Aggregator) Clone() (*Aggregator, error) {
	c, err := NewAggregator(agg.tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrClone, agg.tmpl.Name, err)
	}
	return c, nil
}

// Evaluate evaluates the node in the precision of its return type.
// Single precision results are widened to float64.
func (agg *Aggregator) Evaluate(ctx Context, pos int, args []any) (float64, error) {
	if agg.tmpl.ReturnType == Float {
		v, err := agg.EvaluateFloat(ctx, pos, args)
		return float64(v), err
	}
	return agg.EvaluateDouble(ctx, pos, args)
}

// EvaluateDouble evaluates all child slots in double precision and reduces
// them. The first failing child aborts the evaluation.
func (agg *Aggregator) EvaluateDouble(ctx Context, pos int, args []any) (float64, error) {
	sample, err := collect(agg.arity.Current(), func(slot int) (float64, error) {
		return ctx.EvaluateChildDouble(pos, slot, args)
	})
	if err != nil {
		return 0, err
	}
	return agg.tmpl.Reducer.ReduceDouble(sample), nil
}

// EvaluateFloat evaluates all child slots in single precision and reduces
// them. The first failing child aborts the evaluation.
func (agg *Aggregator) EvaluateFloat(ctx Context, pos int, args []any) (float32, error) {
	sample, err := collect(agg.arity.Current(), func(slot int) (float32, error) {
		return ctx.EvaluateChildFloat(pos, slot, args)
	})
	if err != nil {
		return 0, err
	}
	return agg.tmpl.Reducer.ReduceFloat(sample), nil
}

// collect evaluates slots 0…k-1 in ascending order.
func collect[T scalar](k int, child func(slot int) (T, error)) ([]T, error) {
	sample := make([]T, 0, k)
	for slot := 0; slot < k; slot++ {
		v, err := child(slot)
		if err != nil {
			return nil, err
		}
		sample = append(sample, v)
	}
	return sample, nil
}

// String renders the node with references to its child slots,
// e.g. "Skewness(&1;&2;&3)".
func (agg *Aggregator) String() string {
	return Render(agg.tmpl.Name, agg.arity.Current())
}
