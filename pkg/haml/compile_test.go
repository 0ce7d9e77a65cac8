package haml

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/neurodesk/hamlc/pkg/django"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "nested element",
			src:  "%div#content\n  %p Hello\n",
			want: "<div id='content'>\n  <p>Hello</p>\n</div>\n",
		},
		{
			name: "variable line",
			src:  "= user.name",
			want: "{{ user.name }}\n",
		},
		{
			name: "if else",
			src:  "- if x\n  %p hi\n- else\n  %p bye\n",
			want: "{% if x %}\n  <p>hi</p>\n{% else %}\n  <p>bye</p>\n{% endif %}\n",
		},
		{
			name: "for empty",
			src:  "- for i in items\n  = i\n- empty\n  %p none\n",
			want: "{% for i in items %}\n  {{ i }}\n{% empty %}\n  <p>none</p>\n{% endfor %}\n",
		},
		{
			name: "block is auto closed",
			src:  "- block content\n  %p x\n",
			want: "{% block content %}\n  <p>x</p>\n{% endblock %}\n",
		},
		{
			name: "directive without closer",
			src:  "- extends 'base.html'\n",
			want: "{% extends 'base.html' %}\n",
		},
		{
			name: "javascript filter",
			src:  ":javascript\n  alert('hi');\n",
			want: "<script type='text/javascript'>\n// <![CDATA[\n  alert('hi');\n// ]]>\n</script>\n",
		},
		{
			name: "css filter inside element",
			src:  "%div\n  :css\n    p { color: red; }\n  %p after\n",
			want: "<div>\n<style type='text/css'>\n/*<![CDATA[*/\n    p { color: red; }\n/*]]>*/\n</style>\n  <p>after</p>\n</div>\n",
		},
		{
			name: "plain filter keeps directive lookalikes",
			src:  ":plain\n  - endfor\n  %p x\n",
			want: "  - endfor\n  %p x\n",
		},
		{
			name: "placeholder in element content",
			src:  "%p Hello #{user.name}",
			want: "<p>Hello {{ user.name }}</p>\n",
		},
		{
			name: "bound element",
			src:  "%p= greeting",
			want: "<p>{{ greeting }}</p>\n",
		},
		{
			name: "comment",
			src:  "/ note",
			want: "<!-- note -->\n",
		},
		{
			name: "comment with children",
			src:  "/\n  %p x\n",
			want: "<!-- \n  <p>x</p>\n-->\n",
		},
		{
			name: "silent comment swallows children",
			src:  "-# hidden\n  %p x\n%p y\n",
			want: "<p>y</p>\n",
		},
		{
			name: "self closing tags",
			src:  "%br\n%img{'src': '/a.png'}\n",
			want: "<br />\n<img src='/a.png' />\n",
		},
		{
			name: "self closing tag with inline content",
			src:  "%br hello\n",
			want: "<br>hello</br>\n",
		},
		{
			name: "self closing tag with children",
			src:  "%img\n  %b x\n",
			want: "<img>\n  <b>x</b>\n</img>\n",
		},
		{
			name: "attributes followed by inline variable",
			src:  "%a{'href': '/u'} {{ user.name }}\n",
			want: "<a href='/u'>{{ user.name }}</a>\n",
		},
		{
			name: "tab indentation",
			src:  "%p\n\t%b x\n",
			want: "<p>\n\t<b>x</b>\n</p>\n",
		},
		{
			name: "deep nesting",
			src:  "%ul\n  %li\n    %a{'href': '/'} Home\n",
			want: "<ul>\n  <li>\n    <a href='/'>Home</a>\n  </li>\n</ul>\n",
		},
		{
			name: "text passthrough",
			src:  "Hello\n  %p x\n",
			want: "Hello\n  <p>x</p>\n",
		},
		{
			name: "blank lines ignored",
			src:  "%p a\n\n   \n%p b\n",
			want: "<p>a</p>\n<p>b</p>\n",
		},
		{
			name: "crlf line endings",
			src:  ":javascript\r\n  go();\r\n%p x\r\n",
			want: "<script type='text/javascript'>\n// <![CDATA[\n  go();\n// ]]>\n</script>\n<p>x</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.src)
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileRejectsManualCloser(t *testing.T) {
	out, err := Compile("- if x\n  %p hi\n  - endif\n")
	if err == nil {
		t.Fatalf("expected error, got output %q", out)
	}
	var mde *MalformedDirectiveError
	if !errors.As(err, &mde) {
		t.Fatalf("want *MalformedDirectiveError, got %T: %v", err, err)
	}
	if mde.Line != 3 || mde.Tag != "endif" || mde.Source != "  - endif" {
		t.Errorf("unexpected error fields: %+v", mde)
	}
	if out != "" {
		t.Errorf("expected no partial output, got %q", out)
	}
}

func TestMalformedDirectiveKeepsOriginalLine(t *testing.T) {
	_, err := Compile("- for x in y\r\n\t- endfor extra\r\n")
	var mde *MalformedDirectiveError
	if !errors.As(err, &mde) {
		t.Fatalf("want *MalformedDirectiveError, got %v", err)
	}
	if mde.Source != "\t- endfor extra" {
		t.Errorf("Source = %q", mde.Source)
	}
	if !strings.Contains(err.Error(), "line 2:") {
		t.Errorf("error %q does not name the line", err)
	}
}

func TestEmptyControlLineIsReported(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	out, err := Compile("%p a\n-\n%p b\n")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if diff := cmp.Diff("<p>a</p>\n{%  %}\n<p>b</p>\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "line=2") {
		t.Errorf("warning does not name the line: %q", logs.String())
	}
}

func TestCompiledOutputIsWellFormed(t *testing.T) {
	src := `- extends 'base.html'
- block content
  %h1#title.big= page.title
  - if user
    %p Welcome #{user.name}
  - else
    %a{'href': '/login'} Log in {{ site.name }}
  - for item in items
    %li= item
  - empty
    %li none
  - autoescape off
    = body
  / footer
`
	out, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if err := django.Check(out); err != nil {
		t.Fatalf("compiled output is not well formed: %v\n%s", err, out)
	}
}
