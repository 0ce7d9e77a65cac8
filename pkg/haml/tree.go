package haml

import (
	"log/slog"
	"strings"
)

// Builder assembles a document tree one line at a time.
type Builder struct {
	root *Root
	line int // lines seen by AddLine
}

func NewBuilder() *Builder {
	return &Builder{root: NewRoot()}
}

// Add places an already classified node.
func (b *Builder) Add(n Node) {
	b.root.Add(n)
}

// AddLine classifies line and places it. Lines that fall inside an open
// filter block are kept as plain text whatever they look like.
func (b *Builder) AddLine(line string) error {
	b.line++
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if b.insideFilter(line) {
		b.root.Add(newTextNode(line))
		return nil
	}
	n, err := NewNode(line)
	if err != nil {
		return err
	}
	if tag, ok := n.(*ControlTagNode); ok && tag.name == "" {
		slog.Warn("control line has no directive, emitting an empty tag", "line", b.line, "source", strings.TrimRight(line, "\r\n"))
	}
	b.root.Add(n)
	return nil
}

// insideFilter follows the path a line would take by indentation alone and
// reports whether it ends up under a filter.
func (b *Builder) insideFilter(line string) bool {
	indentation := newNode(line).indentation
	var cur Node = b.root
	for {
		children := cur.Children()
		if len(children) == 0 {
			return false
		}
		last := children[len(children)-1]
		if indentation <= last.Indentation() {
			return false
		}
		if _, ok := last.(*FilterNode); ok {
			return true
		}
		cur = last
	}
}

func (b *Builder) Root() *Root { return b.root }

// Build assembles nodes, in source order, under a fresh Root.
func Build(nodes []Node) *Root {
	b := NewBuilder()
	for _, n := range nodes {
		b.Add(n)
	}
	return b.Root()
}
