package django

import (
	"bytes"
	"fmt"
	"strings"
)

// Pretty returns a line-oriented representation of the document.
func Pretty(doc *Document) string {
	var buf bytes.Buffer
	buf.WriteString("Document\n")
	ppNodes(&buf, 2, doc.Nodes)
	return buf.String()
}

func ppNodes(buf *bytes.Buffer, indent int, nodes []Node) {
	for _, n := range nodes {
		ppNode(buf, indent, n)
	}
}

func ppNode(buf *bytes.Buffer, indent int, n Node) {
	buf.WriteString(strings.Repeat(" ", indent))
	switch t := n.(type) {
	case *TextNode:
		fmt.Fprintf(buf, "Text(%q)\n", t.Text)
	case *OutputNode:
		fmt.Fprintf(buf, "Output(%q)\n", t.Expr)
	case *StatementNode:
		fmt.Fprintf(buf, "Statement(%s %q)\n", t.Name, t.Args)
	case *VerbatimNode:
		fmt.Fprintf(buf, "Verbatim(%s %q)\n", t.Name, t.Text)
	case *BlockNode:
		fmt.Fprintf(buf, "Block(%s %q)\n", t.Name, t.Args)
		ppNodes(buf, indent+2, t.Body)
		for _, br := range t.Branches {
			buf.WriteString(strings.Repeat(" ", indent))
			fmt.Fprintf(buf, "Branch(%s %q)\n", br.Name, br.Args)
			ppNodes(buf, indent+2, br.Body)
		}
	}
}
