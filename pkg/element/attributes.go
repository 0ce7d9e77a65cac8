package element

import (
	"fmt"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
)

// AttributeError reports an attribute dictionary that is not a valid
// dictionary literal.
type AttributeError struct {
	Source string
	Err    error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("failed to decode attributes %s: %v", e.Source, e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }

var (
	// {:href => '/'} and {"href" => '/'}
	rubySymbolKey = regexp.MustCompile(`:([A-Za-z_][\w-]*)\s*=>`)
	rubyArrow     = regexp.MustCompile(`\s*=>`)
	// {href: '/'} and {data-id: 1}
	bareKey = regexp.MustCompile(`([{,]\s*)([A-Za-z_][\w-]*)\s*:`)
)

type attributes struct {
	ids       []string
	classes   []string
	fragments []string
}

func parseAttributes(src string) (attributes, error) {
	var out attributes
	if strings.TrimSpace(src) == "" {
		return out, nil
	}

	val, err := evalDict(src)
	if err != nil {
		return out, &AttributeError{Source: src, Err: err}
	}
	dict, ok := val.(*starlark.Dict)
	if !ok {
		return out, &AttributeError{Source: src, Err: fmt.Errorf("expected a dictionary, got %s", val.Type())}
	}

	for _, item := range dict.Items() {
		name, ok := starlark.AsString(item[0])
		if !ok {
			return out, &AttributeError{Source: src, Err: fmt.Errorf("attribute name %s is not a string", item[0])}
		}
		switch name {
		case "id":
			out.ids = append(out.ids, stringList(item[1])...)
		case "class":
			out.classes = append(out.classes, stringList(item[1])...)
		default:
			if frag, ok := formatAttribute(name, item[1]); ok {
				out.fragments = append(out.fragments, frag)
			}
		}
	}
	return out, nil
}

// evalDict evaluates the dictionary as written and, failing that, after
// rewriting Ruby-style and bare keys into quoted ones.
func evalDict(src string) (starlark.Value, error) {
	expr := strings.ReplaceAll(src, "\n", " ")
	thread := &starlark.Thread{Name: "element-attributes"}
	val, err := starlark.Eval(thread, "<attributes>", expr, nil)
	if err == nil {
		return val, nil
	}

	rewritten := rubySymbolKey.ReplaceAllString(expr, "'$1':")
	rewritten = rubyArrow.ReplaceAllString(rewritten, ":")
	rewritten = bareKey.ReplaceAllString(rewritten, "$1'$2':")
	if rewritten == expr {
		return nil, err
	}
	return starlark.Eval(thread, "<attributes>", rewritten, nil)
}

// stringList flattens a string or a sequence of values into strings.
func stringList(v starlark.Value) []string {
	if s, ok := starlark.AsString(v); ok {
		return []string{s}
	}
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return []string{v.String()}
	}
	var out []string
	iter := iterable.Iterate()
	defer iter.Done()
	var x starlark.Value
	for iter.Next(&x) {
		out = append(out, stringList(x)...)
	}
	return out
}

func formatAttribute(name string, v starlark.Value) (string, bool) {
	switch v := v.(type) {
	case starlark.NoneType:
		return name, true
	case starlark.Bool:
		if v {
			return name, true
		}
		return "", false
	case starlark.Int, starlark.Float:
		return name + "=" + v.String(), true
	default:
		return name + "=" + wrapValue(strings.Join(stringList(v), " ")), true
	}
}

func wrapValue(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", "&#39;") + "'"
}
