// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command i18n_extract scans a Go source tree for defermsg message
// constructors and writes a gettext POT template of every msgid found.
//
// It loads all buildable packages below the working directory and
// records constant-string arguments to the defermsg constructors
// (M, T, NewMessage, Component, and the leveled Info, Warning, Error,
// and Critical), whether called on the package or on a Factory. The
// msgid is the first argument in every case. Non-constant msgids are
// skipped: they cannot be extracted to a catalog template.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/tools/go/packages"
)

// messageConstructors are the defermsg functions and methods whose
// first argument is a msgid.
var messageConstructors = map[string]struct{}{
	"M":          {},
	"T":          {},
	"NewMessage": {},
	"Component":  {},
	"Info":       {},
	"Warning":    {},
	"Error":      {},
	"Critical":   {},
}

type ref struct {
	file string
	line int
}

// extractor holds the shared state and context for AST analysis within a package.
type extractor struct {
	refs        map[string][]ref
	projectRoot string
	fset        *token.FileSet
	info        *types.Info
	msgPkgs     map[string]struct{}
}

func main() {
	outPath := flag.String("o", "po/defermsg.pot", "output file")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, "./...")
	if err != nil {
		log.Fatalf("failed to load packages: %v", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal("failed to load packages due to errors")
	}

	refs := extractRefs(pkgs, findProjectRoot(wd), findMessagePkgPaths(pkgs))

	// Emit POT
	msgids := make([]string, 0, len(refs))
	for id := range refs {
		msgids = append(msgids, id)
	}

	sort.Strings(msgids)

	var b strings.Builder
	writeHeader(&b)

	for i, id := range msgids {
		rs := refs[id]
		sort.Slice(rs, func(i, j int) bool {
			if rs[i].file != rs[j].file {
				return rs[i].file < rs[j].file
			}

			return rs[i].line < rs[j].line
		})

		// After sorting by file and line, duplicates will be adjacent.
		// Avoid a per-msgid set while producing identical output.
		fmt.Fprint(&b, "#:")

		lastFile := ""

		lastLine := 0
		for _, r := range rs {
			if r.file != lastFile || r.line != lastLine {
				fmt.Fprintf(&b, " %s:%d", r.file, r.line)

				lastFile = r.file
				lastLine = r.line
			}
		}

		fmt.Fprintln(&b)

		fmt.Fprintf(&b, "msgid %q\n", id)
		fmt.Fprintf(&b, "msgstr \"\"\n")

		// Add a separating blank line, but not after the very last entry.
		if i < len(msgids)-1 {
			fmt.Fprintln(&b)
		}
	}

	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := os.WriteFile(*outPath, []byte(b.String()), 0o644); err != nil {
		log.Fatalf("failed to write output file %s: %v", *outPath, err)
	}
}

// extractRefs traverses all Go source files in the given packages,
// looking for message constructor calls to extract.
func extractRefs(pkgs []*packages.Package, projectRoot string, msgPkgPaths map[string]struct{}) map[string][]ref {
	refs := map[string][]ref{}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		// Create an extractor with the context for this package's files.
		e := &extractor{
			refs:        refs,
			projectRoot: projectRoot,
			fset:        p.Fset,
			info:        p.TypesInfo,
			msgPkgs:     msgPkgPaths,
		}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				if call, ok := n.(*ast.CallExpr); ok {
					e.handleCallExpr(call)
				}

				return true
			})
		}
	}

	return refs
}

// findMessagePkgPaths returns the set of package paths in this build
// that define the defermsg package: named "defermsg" with a Message
// struct type. This lets us require that matched constructor calls come
// from the real package, regardless of how it is imported or aliased.
func findMessagePkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	for _, p := range pkgs {
		if p.Name != "defermsg" || p.Types == nil {
			continue
		}

		obj := p.Types.Scope().Lookup("Message")

		tn, ok := obj.(*types.TypeName)
		if !ok {
			continue
		}

		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		if _, ok := named.Underlying().(*types.Struct); ok {
			out[p.PkgPath] = struct{}{}
		}
	}

	return out
}

// constString evaluates expr to a constant string if possible using types.Info.
// Handles string literals, const identifiers, and constant expressions like "a" + "b".
// Non-constant expressions return false.
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// handleCallExpr inspects function calls for message constructors. The
// same selector check covers package-level functions and Factory
// methods: both resolve to a *types.Func declared in the defermsg
// package.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	sel, ok := x.Fun.(*ast.SelectorExpr)
	if !ok {
		return
	}

	fn, ok := e.info.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return
	}

	if _, ok := e.msgPkgs[fn.Pkg().Path()]; !ok {
		return
	}

	if _, ok := messageConstructors[fn.Name()]; !ok {
		return
	}

	if len(x.Args) == 0 {
		return
	}

	if msg, ok := constString(e.info, x.Args[0]); ok {
		e.addRef(x.Args[0].Pos(), msg)
	}
}

// addRef records a reference to a msgid, normalising the file path relative
// to the computed project root.
func (e *extractor) addRef(pos token.Pos, msg string) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	file = filepath.ToSlash(file)

	e.refs[msg] = append(e.refs[msg], ref{file: file, line: p.Line})
}

// writeHeader emits a POT header.
func writeHeader(b *strings.Builder) {
	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintf(b, "\"Project-Id-Version: defermsg %s\\n\"\n", detectVersion())
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", time.Now().UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintln(b, `"Language: en\n"`)
	fmt.Fprintln(b, `"Report-Msgid-Bugs-To: https://codeberg.org/defermsg/defermsg/issues\n"`)
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b)
}

// detectVersion resolves a human-friendly version string using git describe.
// Falls back to "dev" when git is unavailable or this is not a git checkout.
func detectVersion() string {
	cmd := exec.Command("git", "describe", "--tags", "--always", "--dirty")

	out, err := cmd.Output()
	if err != nil {
		return "dev"
	}

	return strings.TrimSpace(string(out))
}

// findProjectRoot attempts to find a stable root directory for source references.
// Preference order:
//  1. git toplevel directory
//  2. nearest parent directory that contains go.mod
//  3. the provided working directory
func findProjectRoot(wd string) string {
	// Try git toplevel
	if root := gitTopLevel(wd); root != "" {
		return root
	}
	// Fall back to nearest go.mod
	if root := nearestGoModDir(wd); root != "" {
		return root
	}

	return wd
}

func gitTopLevel(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	cmd.Dir = wd

	out, err := cmd.Output()
	if err != nil {
		return ""
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return ""
	}

	return filepath.Clean(root)
}

func nearestGoModDir(start string) string {
	dir := filepath.Clean(start)
	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

func fileExists(path string) bool {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return true
	}

	return false
}
