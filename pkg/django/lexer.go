package django

// The lexer yields text and the three delimiter forms of the target syntax:
// variables {{ }}, statements {% %} and comments {# #}.

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokText
	tokVarStart
	tokVarEnd
	tokStmtStart
	tokStmtEnd
	tokCommStart
	tokCommEnd
	tokContent
)

var closingDelims = map[tokenKind]string{
	tokVarEnd:  "}}",
	tokStmtEnd: "%}",
	tokCommEnd: "#}",
}

type token struct {
	kind tokenKind
	val  string
	pos  int // byte offset in source
}

type lexer struct {
	src string
	i   int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) at(delim string) bool {
	return l.i+len(delim) <= len(l.src) && l.src[l.i:l.i+len(delim)] == delim
}

// nextTokenOutside returns text up to the next opening delimiter, the
// delimiter itself, or EOF.
func (l *lexer) nextTokenOutside() token {
	start := l.i
	for l.i < len(l.src) {
		var kind tokenKind
		switch {
		case l.at("{{"):
			kind = tokVarStart
		case l.at("{%"):
			kind = tokStmtStart
		case l.at("{#"):
			kind = tokCommStart
		default:
			l.i++
			continue
		}
		if l.i > start {
			return token{kind: tokText, val: l.src[start:l.i], pos: start}
		}
		l.i += 2
		return token{kind: kind, pos: start}
	}
	if l.i > start {
		return token{kind: tokText, val: l.src[start:l.i], pos: start}
	}
	return token{kind: tokEOF, pos: l.i}
}

// nextTokenInside returns the content of a tag up to close, then close itself.
// An unterminated tag yields its content and then EOF.
func (l *lexer) nextTokenInside(close tokenKind) token {
	delim := closingDelims[close]
	start := l.i
	for l.i < len(l.src) {
		if !l.at(delim) {
			l.i++
			continue
		}
		if l.i > start {
			return token{kind: tokContent, val: l.src[start:l.i], pos: start}
		}
		l.i += len(delim)
		return token{kind: close, pos: start}
	}
	if l.i > start {
		return token{kind: tokContent, val: l.src[start:l.i], pos: start}
	}
	return token{kind: tokEOF, pos: l.i}
}
