package haml

import "strings"

const (
	elementMarker       = "%"
	idMarker            = "#"
	classMarker         = "."
	commentMarker       = "/"
	silentCommentMarker = "-#"
	variableMarker      = "="
	controlMarker       = "-"
)

// NewNode classifies one source line. It returns nil for a blank line and an
// error only for a control line that spells out a closing directive.
func NewNode(line string) (Node, error) {
	stripped := strings.TrimSpace(line)
	switch {
	case stripped == "":
		return nil, nil
	case strings.HasPrefix(stripped, elementMarker),
		strings.HasPrefix(stripped, idMarker),
		strings.HasPrefix(stripped, classMarker):
		return newElementNode(line), nil
	case strings.HasPrefix(stripped, commentMarker):
		return newCommentNode(line), nil
	case strings.HasPrefix(stripped, silentCommentMarker):
		return newSilentCommentNode(line), nil
	case strings.HasPrefix(stripped, variableMarker):
		return newVariableNode(line), nil
	case strings.HasPrefix(stripped, controlMarker):
		n, err := newControlTagNode(line)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	if kind, ok := filterKeywords[stripped]; ok {
		return newFilterNode(line, kind), nil
	}
	return newTextNode(line), nil
}
