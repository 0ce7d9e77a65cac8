package haml

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Node is one source line together with the lines nested under it.
type Node interface {
	// Indentation is the number of leading whitespace characters of the line.
	Indentation() int
	// Content is the trimmed line; variants narrow its meaning.
	Content() string
	// Raw is the untrimmed line including its terminator.
	Raw() string
	Children() []Node
	Render() string

	acceptsChild(candidate Node) bool
	addNode(child Node)
}

type node struct {
	indentation int
	spaces      string
	content     string
	raw         string
	children    []Node
}

func newNode(line string) node {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	spaces := line[:len(line)-len(trimmed)]
	return node{
		indentation: utf8.RuneCountInString(spaces),
		spaces:      spaces,
		content:     strings.TrimSpace(line),
		raw:         line,
	}
}

func (n *node) Indentation() int { return n.indentation }
func (n *node) Content() string  { return n.content }
func (n *node) Raw() string      { return n.raw }
func (n *node) Children() []Node { return n.children }

func (n *node) acceptsChild(Node) bool { return false }

// addNode descends into the most recent child while the new node is deeper
// than it or the child claims it, then appends at that level.
func (n *node) addNode(child Node) {
	if len(n.children) > 0 {
		last := n.children[len(n.children)-1]
		if child.Indentation() > last.Indentation() || last.acceptsChild(child) {
			last.addNode(child)
			return
		}
	}
	n.children = append(n.children, child)
}

func (n *node) renderChildren() string {
	var b strings.Builder
	for _, c := range n.children {
		out := c.Render()
		if out == "" {
			continue
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}
	return b.String()
}

// Root is the sentinel every document hangs from.
type Root struct {
	node
}

func NewRoot() *Root {
	return &Root{node: node{indentation: -1}}
}

// Add places n in the tree. A nil node is ignored.
func (r *Root) Add(n Node) {
	if n == nil {
		return
	}
	r.addNode(n)
}

func (r *Root) Render() string { return r.renderChildren() }

// TextNode passes its line through unchanged.
type TextNode struct {
	node
}

func newTextNode(line string) *TextNode {
	return &TextNode{node: newNode(line)}
}

func (n *TextNode) Render() string {
	out := n.spaces + n.content
	if len(n.children) > 0 {
		out += "\n" + strings.TrimSuffix(n.renderChildren(), "\n")
	}
	return out
}
