package element

import (
	"regexp"
	"strings"
)

// Descriptor is the parsed form of one line of element markup such as
// `%a#home.nav.active{'href': '/'} Home`. Empty strings mean "not present".
type Descriptor struct {
	Tag           string
	ID            string
	Classes       string // space-joined
	Attributes    string // pre-formatted key='value' fragments
	SelfClose     bool
	InlineContent string
	BoundVariable bool
}

const defaultTag = "div"

// Tags that never carry content and are emitted as <tag />.
var selfClosingTags = map[string]bool{
	"meta":   true,
	"img":    true,
	"link":   true,
	"br":     true,
	"hr":     true,
	"input":  true,
	"source": true,
	"track":  true,
}

var (
	headRegex = regexp.MustCompile(`^` +
		`(?P<tag>%\w+)?` +
		`(?P<id>#[\w-]*)?` +
		`(?P<class>\.[\w\.-]*)*`)
	// An inline `{{ var }}` is text, not the start of a dictionary.
	tailRegex = regexp.MustCompile(`(?s)^` +
		`(?P<selfclose>/)?` +
		`(?P<bound>=)?` +
		`(?P<inline>(?:\{\{|[^\w\.#\{]).*)?`)
)

// Parse splits a trimmed element line into its parts.
//
// When the attribute dictionary cannot be evaluated Parse returns an
// *AttributeError together with a usable Descriptor whose Attributes field
// holds the dictionary body verbatim.
func Parse(line string) (Descriptor, error) {
	line = strings.TrimSpace(line)
	head := headRegex.FindStringSubmatch(line)
	rest := line[len(head[0]):]

	var dict string
	if strings.HasPrefix(rest, "{") && !strings.HasPrefix(rest, "{{") {
		if end := dictEnd(rest); end > 0 {
			dict, rest = rest[:end], rest[end:]
		}
	}
	tail := tailRegex.FindStringSubmatch(rest)

	d := Descriptor{
		Tag:           strings.TrimPrefix(head[headRegex.SubexpIndex("tag")], "%"),
		BoundVariable: tail[tailRegex.SubexpIndex("bound")] != "",
		InlineContent: strings.TrimSpace(tail[tailRegex.SubexpIndex("inline")]),
	}
	if d.Tag == "" {
		d.Tag = defaultTag
	}
	d.SelfClose = tail[tailRegex.SubexpIndex("selfclose")] != "" || selfClosingTags[d.Tag]

	id := strings.TrimPrefix(head[headRegex.SubexpIndex("id")], "#")
	classes := strings.Fields(strings.ReplaceAll(head[headRegex.SubexpIndex("class")], ".", " "))

	attrs, err := parseAttributes(dict)
	if err != nil {
		d.ID = id
		d.Classes = strings.Join(classes, " ")
		d.Attributes = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(dict, "{"), "}"))
		return d, err
	}

	for _, one := range attrs.ids {
		id += "_" + one
	}
	d.ID = strings.TrimLeft(id, "_")
	d.Classes = strings.Join(append(classes, attrs.classes...), " ")
	d.Attributes = strings.Join(attrs.fragments, " ")
	return d, nil
}

// dictEnd returns the length of the brace-balanced prefix of s, which starts
// with '{', or -1 when the braces never balance. Braces inside quoted strings
// do not count.
func dictEnd(s string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}
