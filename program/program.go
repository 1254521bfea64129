package program

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/gpnode"
)

// Program is a flattened genetic program. Nodes are stored in prefix order.
//
// A Program must not be changed while it is evaluated. Evaluating disjoint
// programs concurrently is safe.
type Program struct {
	nodes []Node
}

// New creates a program from nodes given in prefix order and checks its
// layout.
func New(nodes ...Node) (*Program, error) {
	p := &Program{nodes: append([]Node(nil), nodes...)}
	if err := p.Check(); err != nil {
		tracer().Errorf("program: %s", err.Error())
		return nil, err
	}
	return p, nil
}

// Len returns the number of nodes of p.
func (p *Program) Len() int {
	return len(p.nodes)
}

// Node returns the node at position pos.
func (p *Program) Node(pos int) (Node, error) {
	if pos < 0 || pos >= len(p.nodes) {
		return nil, fmt.Errorf("%w: position %d of %d", ErrIndexOutOfBounds, pos, len(p.nodes))
	}
	return p.nodes[pos], nil
}

// Check validates that every node is followed by exactly as many operand
// subtrees as its arity declares.
func (p *Program) Check() error {
	if p == nil || len(p.nodes) == 0 {
		return fmt.Errorf("%w: empty program", ErrCorruptTree)
	}
	seen := make(map[*gpnode.Aggregator]int)
	for i, n := range p.nodes {
		if n == nil {
			return fmt.Errorf("%w: nil node at position %d", ErrCorruptTree, i)
		}
		if agg, ok := n.(*gpnode.Aggregator); ok {
			if j, dup := seen[agg]; dup {
				return fmt.Errorf("%w: %s at position %d shared with position %d",
					ErrCorruptTree, agg.Name(), i, j)
			}
			seen[agg] = i
		}
	}
	end, err := p.subtreeEnd(0)
	if err != nil {
		return err
	}
	if end != len(p.nodes) {
		return fmt.Errorf("%w: %d dangling nodes after position %d", ErrCorruptTree,
			len(p.nodes)-end, end-1)
	}
	return nil
}

// subtreeEnd returns the position following the subtree rooted at pos.
func (p *Program) subtreeEnd(pos int) (int, error) {
	open := 1
	for open > 0 {
		if pos >= len(p.nodes) {
			return 0, fmt.Errorf("%w: operands missing at end of program", ErrCorruptTree)
		}
		open += p.nodes[pos].Arity() - 1
		pos++
	}
	return pos, nil
}

// ChildIndex returns the position of the root of operand subtree slot of the
// node at position pos.
func (p *Program) ChildIndex(pos, slot int) (int, error) {
	n, err := p.Node(pos)
	if err != nil {
		return 0, err
	}
	if slot < 0 || slot >= n.Arity() {
		return 0, fmt.Errorf("%w: slot %d of %s at position %d", ErrIndexOutOfBounds,
			slot, n.Name(), pos)
	}
	child := pos + 1
	for i := 0; i < slot; i++ {
		if child, err = p.subtreeEnd(child); err != nil {
			return 0, err
		}
	}
	if child >= len(p.nodes) {
		return 0, fmt.Errorf("%w: slot %d of %s at position %d", ErrCorruptTree,
			slot, n.Name(), pos)
	}
	return child, nil
}

// --- Evaluation ------------------------------------------------------------

// evaluation binds a program to the context.Context of a single run.
type evaluation struct {
	p   *Program
	ctx context.Context
}

var _ gpnode.Context = evaluation{}

func (e evaluation) child(pos, slot int) (int, Node, error) {
	if err := e.ctx.Err(); err != nil {
		return 0, nil, err
	}
	c, err := e.p.ChildIndex(pos, slot)
	if err != nil {
		return 0, nil, err
	}
	return c, e.p.nodes[c], nil
}

func (e evaluation) EvaluateChildDouble(pos, slot int, args []any) (float64, error) {
	c, n, err := e.child(pos, slot)
	if err != nil {
		return 0, err
	}
	return n.EvaluateDouble(e, c, args)
}

func (e evaluation) EvaluateChildFloat(pos, slot int, args []any) (float32, error) {
	c, n, err := e.child(pos, slot)
	if err != nil {
		return 0, err
	}
	return n.EvaluateFloat(e, c, args)
}

// ExecuteDouble evaluates p in double precision. If ctx is cancelled during
// evaluation, the cancellation cause is returned.
func (p *Program) ExecuteDouble(ctx context.Context, args []any) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v, err := p.nodes[0].EvaluateDouble(evaluation{p: p, ctx: ctx}, 0, args)
	if err != nil {
		tracer().Debugf("program: double evaluation failed: %v", err)
	}
	return v, err
}

// ExecuteFloat evaluates p in single precision. If ctx is cancelled during
// evaluation, the cancellation cause is returned.
func (p *Program) ExecuteFloat(ctx context.Context, args []any) (float32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v, err := p.nodes[0].EvaluateFloat(evaluation{p: p, ctx: ctx}, 0, args)
	if err != nil {
		tracer().Debugf("program: float evaluation failed: %v", err)
	}
	return v, err
}

// --- Structural changes ----------------------------------------------------

// arityMutable is implemented by nodes with dynamic arity.
type arityMutable interface {
	SetArity(n int) error
}

// SetArity changes the arity of the dynamic-arity node at position pos and
// adjusts the layout: surplus operand subtrees are dropped, missing operands
// are created by calling grow with the slot index.
func (p *Program) SetArity(pos, n int, grow func(slot int) Node) error {
	node, err := p.Node(pos)
	if err != nil {
		return err
	}
	mutable, ok := node.(arityMutable)
	if !ok {
		return fmt.Errorf("%w: %s has fixed arity", gpnode.ErrInvalidConfiguration, node.Name())
	}
	old := node.Arity()
	if n > old && grow == nil {
		return fmt.Errorf("%w: no operand supplier for growing %s", gpnode.ErrInvalidConfiguration,
			node.Name())
	}
	end, err := p.subtreeEnd(pos)
	if err != nil {
		return err
	}
	keep := pos + 1 // position after the operands which survive
	for i := 0; i < min(n, old); i++ {
		if keep, err = p.subtreeEnd(keep); err != nil {
			return err
		}
	}
	operands := make([]Node, 0, max(0, n-old))
	for slot := old; slot < n; slot++ {
		operand := grow(slot)
		if operand == nil || operand.Arity() != 0 {
			return fmt.Errorf("%w: operand supplier must return terminals", gpnode.ErrInvalidConfiguration)
		}
		operands = append(operands, operand)
	}
	nodes := make([]Node, 0, len(p.nodes)+len(operands))
	nodes = append(nodes, p.nodes[:keep]...)
	nodes = append(nodes, operands...)
	nodes = append(nodes, p.nodes[end:]...)
	if err = mutable.SetArity(n); err != nil {
		return err
	}
	if err = (&Program{nodes: nodes}).Check(); err != nil {
		if rerr := mutable.SetArity(old); rerr != nil {
			tracer().Errorf("program: cannot restore arity %d of %s: %v", old, node.Name(), rerr)
		}
		return err
	}
	p.nodes = nodes
	tracer().Debugf("program: arity of %s at %d changed from %d to %d", node.Name(), pos, old, n)
	return nil
}

// cloner is implemented by nodes which carry per-instance state.
type cloner interface {
	Clone() (*gpnode.Aggregator, error)
}

// Clone creates a deep copy of p. Aggregator nodes are re-instantiated from
// their templates and then set to the arity of the original node.
func (p *Program) Clone() (*Program, error) {
	nodes := make([]Node, len(p.nodes))
	for i, n := range p.nodes {
		c, ok := n.(cloner)
		if !ok {
			nodes[i] = n
			continue
		}
		agg, err := c.Clone()
		if err != nil {
			return nil, err
		}
		if err = agg.SetArity(n.Arity()); err != nil {
			return nil, fmt.Errorf("%w: %w", gpnode.ErrClone, err)
		}
		nodes[i] = agg
	}
	return &Program{nodes: nodes}, nil
}

// --- Rendering -------------------------------------------------------------

// String renders p by substituting the operand references of every node with
// the rendering of the operand subtrees.
func (p *Program) String() string {
	if p == nil || len(p.nodes) == 0 {
		return "<empty>"
	}
	s, _ := p.render(0)
	return s
}

func (p *Program) render(pos int) (string, int) {
	node := p.nodes[pos]
	k := node.Arity()
	operands := make([]string, k)
	next := pos + 1
	for i := 0; i < k && next < len(p.nodes); i++ {
		operands[i], next = p.render(next)
	}
	s := node.String()
	for i := k; i >= 1; i-- { // descending, so &1 does not match a prefix of &10
		s = strings.ReplaceAll(s, "&"+strconv.Itoa(i), operands[i-1])
	}
	return s, next
}
