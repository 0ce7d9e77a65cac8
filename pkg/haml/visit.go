package haml

import (
	"bytes"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Walk calls fn for n and every descendant in source order. depth is 0 for
// the node passed in.
func Walk(n Node, fn func(n Node, depth int) error) error {
	return walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Kind names the variant of n.
func Kind(n Node) string {
	switch t := n.(type) {
	case *Root:
		return "root"
	case *ElementNode:
		return "element"
	case *VariableNode:
		return "variable"
	case *CommentNode:
		return "comment"
	case *SilentCommentNode:
		return "silent-comment"
	case *ControlTagNode:
		return "control"
	case *FilterNode:
		return "filter:" + t.kind.String()
	case *TextNode:
		return "text"
	default:
		return fmt.Sprintf("%T", n)
	}
}

// Pretty returns an indented, line-oriented dump of the tree.
func Pretty(n Node) string {
	var buf bytes.Buffer
	_ = Walk(n, func(n Node, depth int) error {
		buf.WriteString(strings.Repeat("  ", depth))
		if _, ok := n.(*Root); ok {
			buf.WriteString("Root\n")
			return nil
		}
		fmt.Fprintf(&buf, "%s@%d(%q)\n", Kind(n), n.Indentation(), n.Content())
		return nil
	})
	return buf.String()
}

// NodeInfo is a serialisable view of a node.
type NodeInfo struct {
	Kind        string     `json:"kind"`
	Indentation int        `json:"indentation"`
	Content     string     `json:"content,omitempty"`
	Children    []NodeInfo `json:"children,omitempty"`
}

func Describe(n Node) NodeInfo {
	info := NodeInfo{Kind: Kind(n), Indentation: n.Indentation(), Content: n.Content()}
	for _, c := range n.Children() {
		info.Children = append(info.Children, Describe(c))
	}
	return info
}

// MarshalTree encodes Describe(n) as indented JSON.
func MarshalTree(n Node) ([]byte, error) {
	return json.MarshalIndent(Describe(n), "", "  ")
}
