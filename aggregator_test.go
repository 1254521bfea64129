package gpnode

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/gpnode/stats"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// leafContext serves child values from a fixed table and records the
// order in which slots are requested.
type leafContext struct {
	values  []float64
	failAt  int // slot to fail at, -1 for none
	visited []int
}

var errLeaf = errors.New("leaf evaluation failed")

func newLeafContext(values ...float64) *leafContext {
	return &leafContext{values: values, failAt: -1}
}

func (lc *leafContext) EvaluateChildDouble(pos, slot int, args []any) (float64, error) {
	lc.visited = append(lc.visited, slot)
	if slot == lc.failAt {
		return 0, errLeaf
	}
	return lc.values[slot], nil
}

func (lc *leafContext) EvaluateChildFloat(pos, slot int, args []any) (float32, error) {
	lc.visited = append(lc.visited, slot)
	if slot == lc.failAt {
		return 0, errLeaf
	}
	return float32(lc.values[slot]), nil
}

func skewnessNode(t *testing.T, rt ReturnType, initial, min, max int) *Aggregator {
	agg, err := NewAggregator(Template{
		ReturnType: rt,
		Initial:    initial,
		Min:        min,
		Max:        max,
		Reducer:    stats.Skewness{},
	})
	if err != nil {
		t.Fatalf("cannot create skewness node: %v", err)
	}
	return agg
}

func TestAggregatorEvaluateDouble(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	agg := skewnessNode(t, Double, 5, 1, 8)
	ctx := newLeafContext(1, 2, 3, 4, 100)
	v, err := agg.EvaluateDouble(ctx, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(v-2.232395911636458) > 1e-12 {
		t.Errorf("expected skewness 2.2324, have %g", v)
	}
	for i, slot := range ctx.visited {
		if slot != i {
			t.Fatalf("slots evaluated out of order: %v", ctx.visited)
		}
	}
}

func TestAggregatorFailFast(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	agg := skewnessNode(t, Double, 4, 1, 8)
	ctx := newLeafContext(1, 2, 3, 4)
	ctx.failAt = 2
	_, err := agg.EvaluateDouble(ctx, 0, nil)
	if !errors.Is(err, errLeaf) {
		t.Errorf("expected child error to be propagated, have %v", err)
	}
	if len(ctx.visited) != 3 || ctx.visited[2] != 2 {
		t.Errorf("expected evaluation to stop at slot 2, visited %v", ctx.visited)
	}
	ctx.visited = nil
	if _, err = agg.EvaluateFloat(ctx, 0, nil); !errors.Is(err, errLeaf) {
		t.Errorf("expected child error to be propagated in float path, have %v", err)
	}
	if len(ctx.visited) != 3 {
		t.Errorf("expected float evaluation to stop at slot 2, visited %v", ctx.visited)
	}
}

func TestAggregatorPrecisions(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for _, leaves := range [][]float64{{1, 2, 3, 4, 5}, {1, 2, 3, 4, 100}, {2, 8, 0, 4, 1, 9, 9, 0}} {
		agg := skewnessNode(t, Double, len(leaves), 0, 10)
		d, err := agg.EvaluateDouble(newLeafContext(leaves...), 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		f, err := agg.EvaluateFloat(newLeafContext(leaves...), 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		if diff := math.Abs(d - float64(f)); diff > 1e-4*math.Max(1, math.Abs(d)) {
			t.Errorf("%v: double %g and float %g differ by %g", leaves, d, f, diff)
		}
	}
}

func TestAggregatorEvaluateByReturnType(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	agg := skewnessNode(t, Float, 5, 1, 8)
	ctx := newLeafContext(1, 2, 3, 4, 100)
	v, err := agg.Evaluate(ctx, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := stats.Skewness{}.ReduceFloat([]float32{1, 2, 3, 4, 100})
	if v != float64(want) {
		t.Errorf("expected float path result %g, have %g", want, v)
	}
}

func TestAggregatorDegenerateSamples(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for arity := 0; arity <= 2; arity++ {
		agg := skewnessNode(t, Double, arity, 0, 5)
		v, err := agg.EvaluateDouble(newLeafContext(1, 2), 0, nil)
		if err != nil {
			t.Fatalf("arity %d: unexpected error %v", arity, err)
		}
		if !math.IsNaN(v) {
			t.Errorf("arity %d: expected NaN to be passed through, have %g", arity, v)
		}
	}
}

func TestAggregatorClone(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	agg := skewnessNode(t, Float, 1, 1, 5)
	if err := agg.SetArity(4); err != nil {
		t.Fatal(err)
	}
	c, err := agg.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if c == agg {
		t.Fatalf("clone is identical to original")
	}
	initial, min, max := c.arity.Bounds()
	if initial != 1 || min != 1 || max != 5 {
		t.Errorf("expected clone bounds (1,1,5), have (%d,%d,%d)", initial, min, max)
	}
	if c.Arity() != 1 {
		t.Errorf("expected clone to start at initial arity 1, has %d", c.Arity())
	}
	if agg.Arity() != 4 {
		t.Errorf("cloning changed arity of original to %d", agg.Arity())
	}
	if c.ReturnType() != Float || c.tmpl.Reducer != agg.tmpl.Reducer {
		t.Errorf("clone does not share return type and reducer")
	}
	if err := c.SetArity(5); err != nil {
		t.Errorf("clone should accept full arity range: %v", err)
	}
}

func TestAggregatorCloneFailure(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	agg := skewnessNode(t, Double, 2, 1, 3)
	agg.tmpl.Max = 0 // corrupt the template
	_, err := agg.Clone()
	if !errors.Is(err, ErrClone) || !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected clone error wrapping invalid configuration, have %v", err)
	}
}

func TestAggregatorRender(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	agg := skewnessNode(t, Double, 3, 0, 5)
	if s := agg.String(); s != "Skewness(&1;&2;&3)" {
		t.Errorf("expected Skewness(&1;&2;&3), have %q", s)
	}
	_ = agg.SetArity(5)
	if s := agg.String(); s != "Skewness(&1;&2;&3;&4;&5)" {
		t.Errorf("rendering does not track arity: %q", s)
	}
	_ = agg.SetArity(0)
	if s := agg.String(); s != "Skewness()" {
		t.Errorf("expected Skewness(), have %q", s)
	}
	if Render("Mean", 2) != Render("Mean", 2) {
		t.Errorf("rendering is not stable")
	}
}

func TestAggregatorTemplateValidation(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tests := []struct {
		name string
		tmpl Template
	}{
		{"no_reducer", Template{Name: "X", Initial: 1, Min: 1, Max: 1}},
		{"bad_return_type", Template{ReturnType: ReturnType(9), Initial: 1, Min: 1, Max: 1, Reducer: stats.Mean{}}},
		{"bad_bounds", Template{Initial: 4, Min: 1, Max: 3, Reducer: stats.Mean{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.tmpl.Instantiate(); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, have %v", err)
			}
		})
	}
	agg, err := Template{Name: "Avg", Initial: 2, Min: 1, Max: 3, Reducer: stats.Mean{}}.Instantiate()
	if err != nil {
		t.Fatal(err)
	}
	if agg.Name() != "Avg" {
		t.Errorf("explicit name should override reducer name, have %q", agg.Name())
	}
}

func TestNewStatisticAppliesOffset(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	agg, err := NewStatistic(Double, stats.Skewness{}, 2, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if i, min, max := agg.ArityPolicy().Bounds(); i != 3 || min != 2 || max != 5 {
		t.Errorf("expected offset bounds (3,2,5), have (%d,%d,%d)", i, min, max)
	}
	if agg.Name() != "Skewness" {
		t.Errorf("expected name from reducer, have %q", agg.Name())
	}
	c, _ := agg.Clone()
	if i, min, max := c.ArityPolicy().Bounds(); i != 3 || min != 2 || max != 5 {
		t.Errorf("clone must not apply the offset twice, has (%d,%d,%d)", i, min, max)
	}
	if _, err := StatisticTemplate(Double, stats.Skewness{}, -1, 1, 1, 1); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected negative offset to be rejected")
	}
}

func TestAggregatorMutateArity(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	agg := skewnessNode(t, Double, 2, 2, 6)
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		if err := agg.MutateArity(rnd); err != nil {
			t.Fatal(err)
		}
		if n := agg.Arity(); n < 2 || n > 6 {
			t.Fatalf("mutated arity %d out of bounds", n)
		}
		if got := agg.String(); got != Render("Skewness", agg.Arity()) {
			t.Fatalf("rendering %q does not match arity %d", got, agg.Arity())
		}
	}
}

func TestParseReturnType(t *testing.T) {
	if rt, err := ParseReturnType(" Float "); err != nil || rt != Float {
		t.Errorf("expected float, have %v/%v", rt, err)
	}
	if rt, err := ParseReturnType("double"); err != nil || rt != Double {
		t.Errorf("expected double, have %v/%v", rt, err)
	}
	if _, err := ParseReturnType("int"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected int to be rejected")
	}
}
