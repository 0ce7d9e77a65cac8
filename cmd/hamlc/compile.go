package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/neurodesk/hamlc/pkg/buildcache"
	"github.com/neurodesk/hamlc/pkg/django"
	"github.com/neurodesk/hamlc/pkg/haml"
)

func parseFile(path string) (*haml.Root, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := haml.Parse(haml.SplitLines(string(src)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func compileSource(name, src string, c compilerConfig) (string, error) {
	out, err := haml.Compile(src)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if c.CheckOutput {
		if err := django.Check(out); err != nil {
			return "", fmt.Errorf("%s: emitted template: %w", name, err)
		}
	}
	return out, nil
}

func compileStream(r io.Reader, w io.Writer, c compilerConfig) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	out, err := compileSource("<stdin>", string(src), c)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// outputPath swaps the source extension for the configured output one.
func outputPath(source string, c compilerConfig) string {
	for _, ext := range c.SourceExtensions {
		if strings.HasSuffix(source, ext) {
			return strings.TrimSuffix(source, ext) + c.OutputExtension
		}
	}
	return source + c.OutputExtension
}

// compileFiles compiles every path, writing next to the source unless
// output names a destination. All failures are reported together. Sources
// the cache knows to be up to date are skipped; a nil cache compiles all.
func compileFiles(paths []string, output string, stdout io.Writer, c compilerConfig, cache *buildcache.Cache) error {
	var allErr error
	for _, pth := range paths {
		src, err := os.ReadFile(pth)
		if err != nil {
			allErr = errors.Join(allErr, err)
			continue
		}
		dest := output
		if dest == "" {
			dest = outputPath(pth, c)
		}
		if dest != "-" && cache != nil && cache.Fresh(pth, src, dest) {
			slog.Debug("up to date", "source", pth, "output", dest)
			continue
		}

		out, err := compileSource(pth, string(src), c)
		if err != nil {
			allErr = errors.Join(allErr, err)
			continue
		}
		if dest == "-" {
			if _, err := io.WriteString(stdout, out); err != nil {
				return err
			}
			continue
		}
		if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
			allErr = errors.Join(allErr, err)
			continue
		}
		if cache != nil {
			if err := cache.Record(pth, src, dest, []byte(out)); err != nil {
				slog.Warn("cannot record compilation", "source", pth, "error", err)
			}
		}
		slog.Info("compiled", "source", pth, "output", dest)
	}
	return allErr
}

// collectSources expands directories recursively into source files. Files
// named explicitly are taken whatever their extension.
func collectSources(args []string, c compilerConfig) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, de fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if de.IsDir() {
				if path != arg && strings.HasPrefix(de.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if c.isSource(de.Name()) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	slog.Debug("collected sources", "count", len(out))
	return out, nil
}
