package program

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/gpnode"
)

// Node is a single node of a flattened program. *gpnode.Aggregator
// implements Node.
type Node interface {
	Name() string
	// Arity is the number of operand subtrees following the node.
	Arity() int
	EvaluateDouble(ctx gpnode.Context, pos int, args []any) (float64, error)
	EvaluateFloat(ctx gpnode.Context, pos int, args []any) (float32, error)
	// String renders the node with operand references &1…&k.
	String() string
}

var _ Node = (*gpnode.Aggregator)(nil)

// --- Terminals -------------------------------------------------------------

// Constant is a terminal evaluating to a fixed value.
type Constant float64

func (c Constant) Name() string { return "Constant" }
func (c Constant) Arity() int   { return 0 }

func (c Constant) EvaluateDouble(gpnode.Context, int, []any) (float64, error) {
	return float64(c), nil
}

func (c Constant) EvaluateFloat(gpnode.Context, int, []any) (float32, error) {
	return float32(c), nil
}

func (c Constant) String() string {
	return strconv.FormatFloat(float64(c), 'g', -1, 64)
}

// Variable is a terminal evaluating to the program argument with the given index.
type Variable int

func (v Variable) Name() string { return "Variable" }
func (v Variable) Arity() int   { return 0 }

func (v Variable) EvaluateDouble(_ gpnode.Context, _ int, args []any) (float64, error) {
	a, err := v.arg(args)
	if err != nil {
		return 0, err
	}
	switch x := a.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	}
	return 0, fmt.Errorf("%w: argument %d has type %T", ErrMissingArgument, int(v), a)
}

func (v Variable) EvaluateFloat(_ gpnode.Context, _ int, args []any) (float32, error) {
	a, err := v.arg(args)
	if err != nil {
		return 0, err
	}
	switch x := a.(type) {
	case float32:
		return x, nil
	case float64:
		return float32(x), nil
	case int:
		return float32(x), nil
	}
	return 0, fmt.Errorf("%w: argument %d has type %T", ErrMissingArgument, int(v), a)
}

func (v Variable) arg(args []any) (any, error) {
	if int(v) < 0 || int(v) >= len(args) {
		return nil, fmt.Errorf("%w: no argument for X%d", ErrMissingArgument, int(v))
	}
	return args[v], nil
}

func (v Variable) String() string {
	return "X" + strconv.Itoa(int(v))
}

// --- Arithmetic ------------------------------------------------------------

// Op is a binary arithmetic operation.
type Op int8

const (
	Add Op = iota
	Sub
	Mul
)

var opSymbols = [...]string{Add: "+", Sub: "-", Mul: "*"}
var opNames = [...]string{Add: "Add", Sub: "Subtract", Mul: "Multiply"}

// Arith is a fixed-arity function node applying Op to its two operands.
type Arith struct {
	Op Op
}

func (a Arith) Name() string { return opNames[a.Op] }
func (a Arith) Arity() int   { return 2 }

func (a Arith) EvaluateDouble(ctx gpnode.Context, pos int, args []any) (float64, error) {
	x, err := ctx.EvaluateChildDouble(pos, 0, args)
	if err != nil {
		return 0, err
	}
	y, err := ctx.EvaluateChildDouble(pos, 1, args)
	if err != nil {
		return 0, err
	}
	return apply(a.Op, x, y), nil
}

func (a Arith) EvaluateFloat(ctx gpnode.Context, pos int, args []any) (float32, error) {
	x, err := ctx.EvaluateChildFloat(pos, 0, args)
	if err != nil {
		return 0, err
	}
	y, err := ctx.EvaluateChildFloat(pos, 1, args)
	if err != nil {
		return 0, err
	}
	return apply(a.Op, x, y), nil
}

func apply[T float32 | float64](op Op, x, y T) T {
	switch op {
	case Sub:
		return x - y
	case Mul:
		return x * y
	}
	return x + y
}

func (a Arith) String() string {
	return "(&1 " + opSymbols[a.Op] + " &2)"
}
