package gpnode

import (
	"strconv"
	"strings"
)

// Render returns the canonical textual form of a node with the given number
// of child slots: "Name(&1;&2;…;&k)". Child references are 1-based.
// A node without child slots renders as "Name()".
func Render(name string, arity int) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i := 1; i <= arity; i++ {
		if i > 1 {
			b.WriteByte(';')
		}
		b.WriteByte('&')
		b.WriteString(strconv.Itoa(i))
	}
	b.WriteByte(')')
	return b.String()
}
