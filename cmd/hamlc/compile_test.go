package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/neurodesk/hamlc/pkg/buildcache"
	"github.com/neurodesk/hamlc/pkg/haml"
)

func TestCompileStream(t *testing.T) {
	var out bytes.Buffer
	err := compileStream(strings.NewReader("%div#content\n  %p Hello\n"), &out, defaultConfig())
	if err != nil {
		t.Fatalf("compileStream: %v", err)
	}
	if diff := cmp.Diff("<div id='content'>\n  <p>Hello</p>\n</div>\n", out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileStreamMalformed(t *testing.T) {
	var out bytes.Buffer
	err := compileStream(strings.NewReader("- for x in y\n- endfor\n"), &out, defaultConfig())
	var mde *haml.MalformedDirectiveError
	if !errors.As(err, &mde) || mde.Line != 2 {
		t.Fatalf("want malformed directive on line 2, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestCompileFilesWritesNextToSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.haml"), "%p= title\n")
	writeFile(t, filepath.Join(dir, "sub", "part.hamlpy"), "- if x\n  %b y\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, ".hidden", "skip.haml"), "%p")

	c := defaultConfig()
	paths, err := collectSources([]string{dir}, c)
	if err != nil {
		t.Fatalf("collectSources: %v", err)
	}
	want := []string{filepath.Join(dir, "index.haml"), filepath.Join(dir, "sub", "part.hamlpy")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}

	if err := compileFiles(paths, "", &bytes.Buffer{}, c, nil); err != nil {
		t.Fatalf("compileFiles: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "sub", "part.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if diff := cmp.Diff("{% if x %}\n  <b>y</b>\n{% endif %}\n", string(got)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
}

func TestCompileFilesReportsEveryFailure(t *testing.T) {
	dir := t.TempDir()
	bad1 := filepath.Join(dir, "a.haml")
	bad2 := filepath.Join(dir, "b.haml")
	good := filepath.Join(dir, "c.haml")
	writeFile(t, bad1, "- endif\n")
	writeFile(t, bad2, "- endblock\n")
	writeFile(t, good, "%p ok\n")

	err := compileFiles([]string{bad1, bad2, good}, "", &bytes.Buffer{}, defaultConfig(), nil)
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, name := range []string{"a.haml", "b.haml"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error does not mention %s: %v", name, err)
		}
	}
	if _, statErr := os.Stat(filepath.Join(dir, "c.html")); statErr != nil {
		t.Errorf("good file should still compile: %v", statErr)
	}
}

func TestCompileFilesToStdout(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "x.haml")
	writeFile(t, src, "/ hi\n")
	var out bytes.Buffer
	if err := compileFiles([]string{src}, "-", &out, defaultConfig(), nil); err != nil {
		t.Fatalf("compileFiles: %v", err)
	}
	if out.String() != "<!-- hi -->\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestCompileFilesSkipsFreshSources(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "x.haml")
	dest := filepath.Join(dir, "x.html")
	writeFile(t, src, "%p one\n")
	cache := buildcache.New(filepath.Join(dir, ".cache"))

	if err := compileFiles([]string{src}, "", &bytes.Buffer{}, defaultConfig(), cache); err != nil {
		t.Fatalf("first compile: %v", err)
	}
	if !cache.Fresh(src, []byte("%p one\n"), dest) {
		t.Fatal("compilation was not recorded")
	}

	// A hand edit makes the output stale, so the next run rewrites it.
	writeFile(t, dest, "edited")
	if err := compileFiles([]string{src}, "", &bytes.Buffer{}, defaultConfig(), cache); err != nil {
		t.Fatalf("second compile: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<p>one</p>\n" {
		t.Errorf("got %q", got)
	}
}

func TestOutputPath(t *testing.T) {
	c := defaultConfig()
	if got := outputPath("a/b.hamlpy", c); got != "a/b.html" {
		t.Errorf("got %s", got)
	}
	if got := outputPath("page", c); got != "page.html" {
		t.Errorf("got %s", got)
	}
}
