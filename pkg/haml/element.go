package haml

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/neurodesk/hamlc/pkg/element"
)

// #{user.name} anywhere in element content becomes {{ user.name }}.
var placeholderRegex = regexp.MustCompile(`#\{([a-zA-Z0-9._]+)\}`)

// ElementNode renders one markup tag.
type ElementNode struct {
	node
	desc element.Descriptor
}

func newElementNode(line string) *ElementNode {
	n := &ElementNode{node: newNode(line)}
	desc, err := element.Parse(n.content)
	if err != nil {
		slog.Warn("keeping element attributes verbatim", "line", n.content, "error", err)
	}
	n.desc = desc
	return n
}

func (n *ElementNode) Descriptor() element.Descriptor { return n.desc }

func (n *ElementNode) Render() string {
	var b strings.Builder
	if n.indentation > 0 {
		b.WriteString(n.spaces)
	}
	b.WriteString("<" + n.desc.Tag)
	if n.desc.ID != "" {
		b.WriteString(" id='" + n.desc.ID + "'")
	}
	if n.desc.Classes != "" {
		b.WriteString(" class='" + n.desc.Classes + "'")
	}
	if n.desc.Attributes != "" {
		b.WriteString(" " + n.desc.Attributes)
	}

	content := n.tagContent(n.desc.InlineContent, n.desc.BoundVariable)
	if n.desc.SelfClose && content == "" {
		b.WriteString(" />")
	} else {
		b.WriteString(">" + content + "</" + n.desc.Tag + ">")
	}
	return b.String()
}

// tagContent resolves what goes between the opening and closing tag. Nested
// children replace the inline content.
func (n *node) tagContent(inline string, bound bool) string {
	content := inline
	if len(n.children) > 0 {
		content = "\n" + n.renderChildren() + n.spaces
	}
	if bound {
		content = "{{ " + strings.TrimSpace(content) + " }}"
	}
	return placeholderRegex.ReplaceAllString(content, "{{ ${1} }}")
}

// VariableNode emits its line, minus the leading '=', as a template variable.
type VariableNode struct {
	node
}

func newVariableNode(line string) *VariableNode {
	return &VariableNode{node: newNode(line)}
}

func (n *VariableNode) Render() string {
	return n.spaces + n.tagContent(strings.TrimLeft(n.content, variableMarker), true)
}
