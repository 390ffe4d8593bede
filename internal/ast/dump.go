package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	MaxDepth int // 0 - без ограничения
	ShowText bool
}

// Dump prints an indented outline of the tree rooted at n.
func Dump(w io.Writer, n Node, opts DumpOptions) error {
	return dumpNode(w, n, 0, opts)
}

func dumpNode(w io.Writer, n Node, depth int, opts DumpOptions) error {
	if n == nil {
		return nil
	}
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}
	sp := n.Span()
	line := fmt.Sprintf("%s%s [%d,%d)%s", strings.Repeat("  ", depth), n.Kind(), sp.Start, sp.End, describe(n))
	if opts.ShowText {
		line += " " + strconv.Quote(abbreviate(n.Text(), 48))
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, k := range n.Children() {
		if err := dumpNode(w, k, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Ident:
		return " " + n.Name
	case *StringLit:
		return " " + strconv.Quote(n.Value)
	case *BoolLit:
		return " " + strconv.FormatBool(n.Value)
	case *AssignExpr:
		return " " + n.Op
	case *VarDecl:
		return " " + n.Keyword
	case *Property:
		if n.Computed {
			return " " + n.PropKind.String() + " computed"
		}
		return " " + n.PropKind.String()
	case *ArrayLit:
		return " size=" + strconv.Itoa(n.Size)
	case *Other:
		return " " + n.Label
	}
	return ""
}

func abbreviate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
