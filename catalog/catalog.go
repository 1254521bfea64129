/*
Package catalog maps statistic names to reducers and reads function sets of
aggregator nodes from YAML configuration documents.

A function set document looks like this:

	offset: 1          # mandatory operands, optional (default 1)
	nodes:
	  - name: Skewness
	    type: double
	    arity: {initial: 3, min: 2, max: 6}
	  - name: Spread
	    statistic: StandardDeviation
	    type: float
	    arity: {initial: 2, min: 1, max: 4}

The statistic defaults to the node's name.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package catalog

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"

	"github.com/npillmayer/gpnode"
	"github.com/npillmayer/gpnode/stats"
)

// tracer writes to trace with key 'gpnode'
func tracer() tracing.Trace {
	return tracing.Select("gpnode")
}

var (
	// ErrUnknownStatistic signals a statistic name without a registered reducer.
	ErrUnknownStatistic = errors.New("catalog: unknown statistic")
	// ErrMalformedFunctionSet signals a function set document which cannot be read.
	ErrMalformedFunctionSet = errors.New("catalog: malformed function set")
)

// Catalog is a registry of reducers, keyed by statistic name.
// It is safe for concurrent use.
type Catalog struct {
	mx       sync.RWMutex
	reducers map[string]gpnode.Reducer
}

// New creates a catalog holding the statistics of package stats.
func New() *Catalog {
	c := &Catalog{reducers: make(map[string]gpnode.Reducer)}
	for _, r := range []gpnode.Reducer{
		stats.Skewness{}, stats.Kurtosis{}, stats.Mean{},
		stats.Variance{}, stats.StdDev{}, stats.Median{},
	} {
		c.reducers[r.Name()] = r
	}
	return c
}

// Register adds or replaces a reducer under its name. A nil reducer or one
// without a name is rejected with gpnode.ErrInvalidConfiguration.
func (c *Catalog) Register(r gpnode.Reducer) error {
	if r == nil || r.Name() == "" {
		return fmt.Errorf("%w: reducer without name", gpnode.ErrInvalidConfiguration)
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	c.reducers[r.Name()] = r
	return nil
}

// Lookup returns the reducer registered for a statistic name.
func (c *Catalog) Lookup(name string) (gpnode.Reducer, error) {
	c.mx.RLock()
	defer c.mx.RUnlock()
	r, ok := c.reducers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatistic, name)
	}
	return r, nil
}

// Names returns the registered statistic names in sorted order.
func (c *Catalog) Names() []string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	names := make([]string, 0, len(c.reducers))
	for name := range c.reducers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- Function sets ---------------------------------------------------------

type functionSetDoc struct {
	Offset *int      `yaml:"offset"`
	Nodes  []nodeDoc `yaml:"nodes"`
}

type nodeDoc struct {
	Name      string   `yaml:"name"`
	Statistic string   `yaml:"statistic"`
	Type      string   `yaml:"type"`
	Arity     arityDoc `yaml:"arity"`
}

type arityDoc struct {
	Initial int `yaml:"initial"`
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
}

// LoadFunctionSet reads a function set document and returns one template per
// node entry, in document order. Arity bounds are shifted by the document's
// operand offset.
func (c *Catalog) LoadFunctionSet(r io.Reader) ([]gpnode.Template, error) {
	var doc functionSetDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFunctionSet, err)
	}
	offset := gpnode.DefaultOperandOffset
	if doc.Offset != nil {
		offset = *doc.Offset
	}
	templates := make([]gpnode.Template, 0, len(doc.Nodes))
	for i, n := range doc.Nodes {
		tmpl, err := c.template(n, offset)
		if err != nil {
			tracer().Errorf("function set: node #%d: %v", i, err)
			return nil, fmt.Errorf("node #%d (%s): %w", i, n.Name, err)
		}
		templates = append(templates, tmpl)
	}
	tracer().Infof("function set: loaded %d aggregator templates", len(templates))
	return templates, nil
}

func (c *Catalog) template(n nodeDoc, offset int) (gpnode.Template, error) {
	statistic := n.Statistic
	if statistic == "" {
		statistic = n.Name
	}
	reducer, err := c.Lookup(statistic)
	if err != nil {
		return gpnode.Template{}, err
	}
	rt := gpnode.Double
	if n.Type != "" {
		if rt, err = gpnode.ParseReturnType(n.Type); err != nil {
			return gpnode.Template{}, err
		}
	}
	tmpl, err := gpnode.StatisticTemplate(rt, reducer, offset,
		n.Arity.Initial, n.Arity.Min, n.Arity.Max)
	if err != nil {
		return gpnode.Template{}, err
	}
	tmpl.Name = n.Name
	return tmpl, nil
}
