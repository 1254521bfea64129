package gpnode

import (
	"fmt"
	"strings"
)

// ReturnType tags the numeric kind a node evaluates to.
type ReturnType int8

const (
	// Double is double precision (float64).
	Double ReturnType = iota
	// Float is single precision (float32).
	Float
)

func (rt ReturnType) String() string {
	switch rt {
	case Double:
		return "double"
	case Float:
		return "float"
	}
	return fmt.Sprintf("ReturnType(%d)", int8(rt))
}

// ParseReturnType maps "double" or "float" (case-insensitive) to a ReturnType.
func ParseReturnType(s string) (ReturnType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "double", "float64":
		return Double, nil
	case "float", "float32":
		return Float, nil
	}
	return Double, fmt.Errorf("%w: unknown return type %q", ErrInvalidConfiguration, s)
}

func (rt ReturnType) valid() bool {
	return rt == Double || rt == Float
}

// scalar is the set of numeric kinds an aggregator may evaluate to.
type scalar interface {
	~float32 | ~float64
}
