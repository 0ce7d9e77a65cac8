package haml

import "strings"

// FilterKind selects how a filter block wraps its verbatim body.
type FilterKind int

const (
	FilterScript FilterKind = iota
	FilterStyle
	FilterPlain
)

var filterKeywords = map[string]FilterKind{
	":javascript": FilterScript,
	":css":        FilterStyle,
	":plain":      FilterPlain,
}

var filterWrappers = map[FilterKind][2]string{
	FilterScript: {"<script type='text/javascript'>\n// <![CDATA[\n", "// ]]>\n</script>"},
	FilterStyle:  {"<style type='text/css'>\n/*<![CDATA[*/\n", "/*]]>*/\n</style>"},
}

func (k FilterKind) String() string {
	switch k {
	case FilterScript:
		return "javascript"
	case FilterStyle:
		return "css"
	case FilterPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// FilterNode captures every deeper line as-is and re-emits the raw text.
type FilterNode struct {
	node
	kind FilterKind
}

func newFilterNode(line string, kind FilterKind) *FilterNode {
	return &FilterNode{node: newNode(line), kind: kind}
}

func (n *FilterNode) Kind() FilterKind { return n.kind }

// addNode keeps the body flat: nothing is nested below a filter's children.
func (n *FilterNode) addNode(child Node) {
	n.children = append(n.children, child)
}

func (n *FilterNode) body() string {
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(strings.TrimRight(c.Raw(), "\r\n"))
		b.WriteByte('\n')
	}
	return b.String()
}

func (n *FilterNode) Render() string {
	if wrap, ok := filterWrappers[n.kind]; ok {
		return wrap[0] + n.body() + wrap[1]
	}
	return strings.TrimSuffix(n.body(), "\n")
}
