package django

// Node is any node in a parsed target template.
type Node interface {
	node()
}

// Document is the root node produced by Parse.
type Document struct {
	Nodes []Node
}

func (*Document) node() {}

// TextNode is literal text between tags.
type TextNode struct {
	Text string
}

func (*TextNode) node() {}

// OutputNode is a variable expression: {{ expr }}
type OutputNode struct {
	Expr string
}

func (*OutputNode) node() {}

// StatementNode is a tag without a body, e.g. {% extends 'base.html' %}.
type StatementNode struct {
	Name string
	Args string
}

func (*StatementNode) node() {}

// BlockNode is a tag with a body and a closer, e.g. {% if x %}...{% endif %}.
// Intermediate tags such as else or empty start a new Branch.
type BlockNode struct {
	Name     string
	Args     string
	Body     []Node
	Branches []*Branch
}

func (*BlockNode) node() {}

// Branch is an intermediate tag of a block together with its body.
type Branch struct {
	Name string
	Args string
	Body []Node
}

// VerbatimNode holds the untouched contents of {% verbatim %} or
// {% comment %} blocks.
type VerbatimNode struct {
	Name string
	Text string
}

func (*VerbatimNode) node() {}
