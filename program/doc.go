/*
Package program provides a flattened, prefix-ordered program representation
which implements gpnode.Context.

A program is a sequence of nodes. The first node is the root; every function
node is followed by the subtrees of its operands, in slot order. A node's
position in the sequence is its address, and the i-th operand of the node at
position pos is found by skipping the subtrees of operands 0…i-1.

Programs check their layout on construction and after structural changes:
every node must be given exactly as many operand subtrees as its current
arity declares. A mismatch is reported as ErrCorruptTree.

Evaluation is synchronous and does not modify the program. Cancellation is
observed before each child evaluation, through the context.Context handed to
ExecuteDouble and ExecuteFloat.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package program

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'gpnode'
func tracer() tracing.Trace {
	return tracing.Select("gpnode")
}

var (
	// ErrCorruptTree signals a program layout not matching the arity of its nodes.
	ErrCorruptTree = errors.New("program: corrupt program tree")
	// ErrIndexOutOfBounds signals an invalid node position or operand slot.
	ErrIndexOutOfBounds = errors.New("program: index out of bounds")
	// ErrMissingArgument signals a variable without a matching program argument.
	ErrMissingArgument = errors.New("program: missing argument")
)
