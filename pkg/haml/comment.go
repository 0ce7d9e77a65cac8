package haml

import "strings"

// CommentNode is emitted as a markup comment.
type CommentNode struct {
	node
}

func newCommentNode(line string) *CommentNode {
	n := &CommentNode{node: newNode(line)}
	n.content = strings.TrimSpace(strings.TrimLeft(n.content, commentMarker))
	return n
}

func (n *CommentNode) Render() string {
	if len(n.children) > 0 {
		return "<!-- \n" + n.renderChildren() + "-->"
	}
	return "<!-- " + n.content + " -->"
}

// SilentCommentNode swallows its line and everything nested under it.
type SilentCommentNode struct {
	node
}

func newSilentCommentNode(line string) *SilentCommentNode {
	return &SilentCommentNode{node: newNode(line)}
}

func (n *SilentCommentNode) Render() string { return "" }
