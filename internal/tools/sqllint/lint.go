package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	sqlMarkerPattern  = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with|create)\b`)
	uuidMarkerPattern = regexp.MustCompile(`^--sql ([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})$`)
)

type violation struct {
	file    string
	name    string
	line    int
	message string
}

func (v violation) String() string {
	return fmt.Sprintf("%s:%d %s (%s)", v.file, v.line, v.message, v.name)
}

// linter collects violations across files so marker reuse is caught between
// the Postgres and SQLite statement sets.
type linter struct {
	seen       map[string]string
	violations []violation
}

func newLinter() *linter {
	return &linter{seen: map[string]string{}}
}

// lintPaths walks every target and lints each non-test Go file.
func lintPaths(targets []string) ([]violation, error) {
	l := newLinter()
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if filepath.Ext(target) == ".go" {
				if err := l.lintFile(target, nil); err != nil {
					return nil, err
				}
			}
			continue
		}
		walkErr := filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != target && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			return l.lintFile(path, nil)
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}
	return l.violations, nil
}

// lintFile parses path (or src when non-nil) and records every SQL string
// literal that lacks a unique --sql <uuid> marker.
func (l *linter) lintFile(path string, src any) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return err
	}
	ast.Inspect(file, func(n ast.Node) bool {
		vs, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for _, value := range vs.Values {
			bl, ok := value.(*ast.BasicLit)
			if !ok || bl.Kind != token.STRING {
				continue
			}
			raw, err := unquote(bl.Value)
			if err != nil || !sqlMarkerPattern.MatchString(raw) {
				continue
			}
			v := violation{
				file: path,
				line: fset.Position(bl.Pos()).Line,
				name: joinNames(vs.Names),
			}
			m := uuidMarkerPattern.FindStringSubmatch(firstLine(raw))
			if m == nil {
				v.message = "missing or invalid --sql <uuid> marker"
				l.violations = append(l.violations, v)
				continue
			}
			if prev, dup := l.seen[m[1]]; dup {
				v.message = "marker " + m[1] + " already used by " + prev
				l.violations = append(l.violations, v)
				continue
			}
			l.seen[m[1]] = v.name
		}
		return true
	})
	return nil
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func unquote(v string) (string, error) {
	if len(v) == 0 {
		return v, nil
	}
	if v[0] == '`' {
		return v[1 : len(v)-1], nil
	}
	return strconv.Unquote(v)
}

func joinNames(idents []*ast.Ident) string {
	parts := make([]string, 0, len(idents))
	for _, ident := range idents {
		if ident == nil {
			continue
		}
		parts = append(parts, ident.Name)
	}
	return strings.Join(parts, ",")
}
