package gpnode

import "fmt"

// DefaultOperandOffset is the number of mandatory operands a statistic node
// carries in addition to the arity bounds it is configured with.
const DefaultOperandOffset = 1

// Template is the immutable blueprint of an aggregator node. Live nodes and
// all of their clones are instantiated from a template, which never carries
// the arity a live node has been mutated to.
type Template struct {
	// Name is the node's identifier. If empty, the reducer's name is used.
	Name string
	// ReturnType selects the numeric kind the node evaluates to.
	ReturnType ReturnType
	// Initial, Min and Max are the arity bounds.
	Initial, Min, Max int
	// Reducer folds the sample of child values.
	Reducer Reducer
}

// StatisticTemplate creates a template for a statistic node. All arity bounds
// are shifted by offset, accounting for operands every node of the family
// requires.
func StatisticTemplate(rt ReturnType, reducer Reducer, offset, initial, min, max int) (Template, error) {
	if offset < 0 {
		return Template{}, fmt.Errorf("%w: negative operand offset %d", ErrInvalidConfiguration, offset)
	}
	tmpl := Template{
		ReturnType: rt,
		Initial:    initial + offset,
		Min:        min + offset,
		Max:        max + offset,
		Reducer:    reducer,
	}
	if err := tmpl.validate(); err != nil {
		return Template{}, err
	}
	return tmpl, nil
}

func (tmpl Template) normalized() Template {
	if tmpl.Name == "" && tmpl.Reducer != nil {
		tmpl.Name = tmpl.Reducer.Name()
	}
	return tmpl
}

func (tmpl Template) validate() error {
	tmpl = tmpl.normalized()
	if tmpl.Reducer == nil {
		return fmt.Errorf("%w: reducer is required", ErrInvalidConfiguration)
	}
	if tmpl.Name == "" {
		return fmt.Errorf("%w: node name is required", ErrInvalidConfiguration)
	}
	if !tmpl.ReturnType.valid() {
		return fmt.Errorf("%w: unsupported return type %s", ErrInvalidConfiguration, tmpl.ReturnType)
	}
	_, err := NewArityPolicy(tmpl.Initial, tmpl.Min, tmpl.Max)
	return err
}

// Instantiate creates a live node from the template.
func (tmpl Template) Instantiate() (*Aggregator, error) {
	return NewAggregator(tmpl)
}
