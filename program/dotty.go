package program

import (
	"fmt"
	"io"
	"strings"
)

// ProgramToDot outputs the structure of a program in Graphviz DOT format
// (for debugging purposes).
func ProgramToDot(p *Program, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	for pos, node := range p.nodes {
		styles := nodeDotStyles(node.Arity() == 0)
		label := dotLabel(node)
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", pos, label, styles)
		for slot := 0; slot < node.Arity(); slot++ {
			child, err := p.ChildIndex(pos, slot)
			if err != nil {
				tracer().Errorf("program DOT: %s", err.Error())
				nilid := pos*100 + slot + 10000
				nodelist += fmt.Sprintf("\"%d\" %s;\n", nilid, emptyNode())
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", pos, nilid)
				continue
			}
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\" [label=\"&%d\"];\n", pos, child, slot+1)
		}
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func dotLabel(node Node) string {
	if node.Arity() == 0 {
		return strings.ReplaceAll(node.String(), "\"", "\\\"")
	}
	return fmt.Sprintf("%s\\n#%d", node.Name(), node.Arity())
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"
}

func nodeDotStyles(isTerminal bool) string {
	s := ",style=filled"
	if isTerminal {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}
