package program

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Palette colors the node kinds of a program listing.
type Palette struct {
	Function *color.Color
	Terminal *color.Color
	Position *color.Color
}

// DefaultPalette returns the palette used by Dump. Colors are switched off
// if stdout is not a terminal.
func DefaultPalette() *Palette {
	p := &Palette{
		Function: color.New(color.FgBlue, color.Bold),
		Terminal: color.New(color.FgGreen),
		Position: color.New(color.FgHiBlack),
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		p.Function.DisableColor()
		p.Terminal.DisableColor()
		p.Position.DisableColor()
	}
	return p
}

// Dump writes an indented listing of p to w, one node per line.
func Dump(p *Program, w io.Writer) {
	DumpWith(p, w, DefaultPalette())
}

// DumpWith writes an indented listing of p to w, using the given palette.
func DumpWith(p *Program, w io.Writer, palette *Palette) {
	depth := make([]int, len(p.nodes))
	for pos, node := range p.nodes {
		palette.Position.Fprintf(w, "%4d ", pos)
		io.WriteString(w, strings.Repeat("  ", depth[pos]))
		if node.Arity() == 0 {
			palette.Terminal.Fprint(w, node.String())
		} else {
			palette.Function.Fprint(w, node.Name())
			fmt.Fprintf(w, " /%d", node.Arity())
		}
		io.WriteString(w, "\n")
		for slot := 0; slot < node.Arity(); slot++ {
			if child, err := p.ChildIndex(pos, slot); err == nil {
				depth[child] = depth[pos] + 1
			}
		}
	}
}
