package django

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zyedidia/generic/stack"
)

// Tags that open a body, and the tag that closes it.
var blockTags = map[string]string{
	"if":             "endif",
	"for":            "endfor",
	"block":          "endblock",
	"filter":         "endfilter",
	"autoescape":     "endautoescape",
	"with":           "endwith",
	"spaceless":      "endspaceless",
	"ifchanged":      "endifchanged",
	"ifequal":        "endifequal",
	"ifnotequal":     "endifnotequal",
	"blocktrans":     "endblocktrans",
	"blocktranslate": "endblocktranslate",
}

// Intermediate tags and the blocks allowed to hold them.
var branchTags = map[string][]string{
	"else":   {"if", "ifchanged", "ifequal", "ifnotequal"},
	"elif":   {"if"},
	"empty":  {"for"},
	"plural": {"blocktrans", "blocktranslate"},
}

// Blocks whose contents are kept as-is.
var verbatimTags = map[string]string{
	"verbatim": "endverbatim",
	"comment":  "endcomment",
}

var openerCloser = map[tokenKind]tokenKind{
	tokVarStart:  tokVarEnd,
	tokStmtStart: tokStmtEnd,
	tokCommStart: tokCommEnd,
}

// SyntaxError reports a malformed target template.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse parses a target template into a Document. Every block tag must be
// closed by its matching end tag and intermediate tags must sit inside a
// block that accepts them. Expressions are kept as raw strings.
func Parse(src string) (*Document, error) {
	p := &parser{l: newLexer(src), open: stack.New[*frame](), doc: &Document{}}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// Check reports whether src is a well formed target template.
func Check(src string) error {
	_, err := Parse(src)
	return err
}

type frame struct {
	block *BlockNode
	nodes *[]Node
	pos   int
}

type parser struct {
	l    *lexer
	open *stack.Stack[*frame]
	doc  *Document
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &SyntaxError{
		Line: 1 + strings.Count(p.l.src[:pos], "\n"),
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (p *parser) append(n Node) {
	nodes := &p.doc.Nodes
	if p.open.Size() > 0 {
		nodes = p.open.Peek().nodes
	}
	*nodes = append(*nodes, n)
}

func (p *parser) parse() error {
	for {
		tok := p.l.nextTokenOutside()
		switch tok.kind {
		case tokEOF:
			if p.open.Size() > 0 {
				f := p.open.Peek()
				return p.errorf(f.pos, "unclosed %s block, expected {%% %s %%}", f.block.Name, blockTags[f.block.Name])
			}
			return nil
		case tokText:
			p.append(&TextNode{Text: tok.val})
		case tokVarStart:
			expr, err := p.readUntil(tokVarEnd, tok.pos)
			if err != nil {
				return err
			}
			p.append(&OutputNode{Expr: strings.TrimSpace(expr)})
		case tokCommStart:
			if _, err := p.readUntil(tokCommEnd, tok.pos); err != nil {
				return err
			}
		case tokStmtStart:
			stmt, err := p.readUntil(tokStmtEnd, tok.pos)
			if err != nil {
				return err
			}
			if err := p.statement(strings.TrimSpace(stmt), tok.pos); err != nil {
				return err
			}
		default:
			return p.errorf(tok.pos, "unexpected token kind outside: %v", tok.kind)
		}
	}
}

func (p *parser) readUntil(close tokenKind, pos int) (string, error) {
	var b strings.Builder
	for {
		t := p.l.nextTokenInside(close)
		switch t.kind {
		case tokContent:
			b.WriteString(t.val)
		case close:
			return b.String(), nil
		default:
			return "", p.errorf(pos, "unterminated tag, expected %q", closingDelims[close])
		}
	}
}

func (p *parser) statement(stmt string, pos int) error {
	name, args := splitNameArgs(stmt)
	if name == "" {
		return p.errorf(pos, "empty statement tag")
	}

	if closer, ok := verbatimTags[name]; ok {
		text, err := p.readVerbatim(closer, pos)
		if err != nil {
			return err
		}
		p.append(&VerbatimNode{Name: name, Text: text})
		return nil
	}

	if _, ok := blockTags[name]; ok {
		b := &BlockNode{Name: name, Args: args}
		p.append(b)
		p.open.Push(&frame{block: b, nodes: &b.Body, pos: pos})
		return nil
	}

	if owners, ok := branchTags[name]; ok {
		if p.open.Size() == 0 || !slices.Contains(owners, p.open.Peek().block.Name) {
			return p.errorf(pos, "{%% %s %%} is only allowed inside %s", name, strings.Join(owners, ", "))
		}
		f := p.open.Peek()
		br := &Branch{Name: name, Args: args}
		f.block.Branches = append(f.block.Branches, br)
		f.nodes = &br.Body
		return nil
	}

	if strings.HasPrefix(name, "end") {
		if p.open.Size() == 0 {
			return p.errorf(pos, "unexpected {%% %s %%} with no open block", name)
		}
		if want := blockTags[p.open.Peek().block.Name]; want != name {
			return p.errorf(pos, "unexpected {%% %s %%}, expected {%% %s %%}", name, want)
		}
		p.open.Pop()
		return nil
	}

	p.append(&StatementNode{Name: name, Args: args})
	return nil
}

// readVerbatim copies source text up to the closer statement.
func (p *parser) readVerbatim(closer string, pos int) (string, error) {
	var out strings.Builder
	for {
		t := p.l.nextTokenOutside()
		switch t.kind {
		case tokEOF:
			return "", p.errorf(pos, "unterminated block, expected {%% %s %%}", closer)
		case tokText:
			out.WriteString(t.val)
		case tokVarStart, tokStmtStart, tokCommStart:
			inner, err := p.readUntil(openerCloser[t.kind], t.pos)
			if err != nil {
				return "", err
			}
			if t.kind == tokStmtStart {
				if name, _ := splitNameArgs(inner); name == closer {
					return out.String(), nil
				}
			}
			out.WriteString(p.l.src[t.pos:p.l.i])
		}
	}
}

func splitNameArgs(stmt string) (name, args string) {
	s := strings.TrimSpace(stmt)
	i := strings.IndexFunc(s, isSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
