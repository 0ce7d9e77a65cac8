package haml

import "strings"

// Directives that get a generated closer, keyed by opener.
var autoClose = map[string]string{
	"for":        "endfor",
	"if":         "endif",
	"block":      "endblock",
	"filter":     "endfilter",
	"autoescape": "endautoescape",
}

// Branches that nest inside their opener even at the same indentation.
var nestedSibling = map[string]string{
	"if":  "else",
	"for": "empty",
}

func isAutoCloser(name string) bool {
	for _, closer := range autoClose {
		if closer == name {
			return true
		}
	}
	return false
}

// ControlTagNode renders a `- name args` line as a {% name args %} directive.
type ControlTagNode struct {
	node
	statement string
	name      string
}

func newControlTagNode(line string) (*ControlTagNode, error) {
	n := &ControlTagNode{node: newNode(line)}
	n.statement = strings.TrimSpace(strings.TrimLeft(n.content, controlMarker))
	n.name, _, _ = strings.Cut(n.statement, " ")
	if isAutoCloser(n.name) {
		return nil, &MalformedDirectiveError{Source: strings.TrimRight(n.raw, "\r\n"), Tag: n.name}
	}
	return n, nil
}

// TagName is the first word of the directive.
func (n *ControlTagNode) TagName() string { return n.name }

// Statement is the directive without its marker.
func (n *ControlTagNode) Statement() string { return n.statement }

func (n *ControlTagNode) acceptsChild(candidate Node) bool {
	other, ok := candidate.(*ControlTagNode)
	if !ok {
		return false
	}
	want, ok := nestedSibling[n.name]
	return ok && want == other.name
}

func (n *ControlTagNode) Render() string {
	lines := []string{n.spaces + "{% " + n.statement + " %}"}
	if len(n.children) > 0 {
		lines = append(lines, strings.TrimSuffix(n.renderChildren(), "\n"))
	}
	if closer, ok := autoClose[n.name]; ok {
		lines = append(lines, n.spaces+"{% "+closer+" %}")
	}
	return strings.Join(lines, "\n")
}
