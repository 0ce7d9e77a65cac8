package haml

import (
	"errors"
	"strings"
)

// SplitLines splits src after each newline, keeping the terminators.
func SplitLines(src string) []string {
	if src == "" {
		return nil
	}
	return strings.SplitAfter(src, "\n")
}

// CompileLines turns source lines into target template text. A
// *MalformedDirectiveError aborts the whole document.
func CompileLines(lines []string) (string, error) {
	root, err := Parse(lines)
	if err != nil {
		return "", err
	}
	return root.Render(), nil
}

// Compile is CompileLines over a whole document.
func Compile(src string) (string, error) {
	return CompileLines(SplitLines(src))
}

// Parse builds the tree for lines without rendering it.
func Parse(lines []string) (*Root, error) {
	b := NewBuilder()
	for i, line := range lines {
		if err := b.AddLine(line); err != nil {
			var mde *MalformedDirectiveError
			if errors.As(err, &mde) {
				mde.Line = i + 1
			}
			return nil, err
		}
	}
	return b.Root(), nil
}
