// Package imports implements the Fusion import resolver (§4.3): given the
// main program tree and its file path, it transitively loads every
// requested library file and merges the requested symbols into the main
// program tree in place.
package imports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fusion/ast"
	"fusion/syntax"
)

// Resolver holds the state shared across one resolution run: a cache of
// fully-resolved library trees keyed by canonical path, the stack of paths
// currently being loaded (for cycle detection), and the global path→name
// mapping used to keep merged external library names unique (§4.3 step 6).
type Resolver struct {
	cache      map[string]*ast.Program
	stack      []string
	pathToName map[string]string
	libIndex   int
}

// NewResolver creates a resolver for a single top-level Resolve call.
func NewResolver() *Resolver {
	return &Resolver{
		cache:      make(map[string]*ast.Program),
		pathToName: make(map[string]string),
	}
}

// Resolve resolves every import in main (loaded from mainPath) and merges
// the results into main in place.
func (r *Resolver) Resolve(main *ast.Program, mainPath string) error {
	canon, err := canonicalize(mainPath)
	if err != nil {
		return fmt.Errorf("cannot resolve main file path: %w", err)
	}

	r.cache[canon] = main
	r.stack = append(r.stack, canon)
	defer r.popStack()

	return r.resolveImportsInto(main, canon)
}

// resolveImportsInto resolves every import request in prog (parsed from the
// file at fromPath) and merges the results into prog in place.
func (r *Resolver) resolveImportsInto(prog *ast.Program, fromPath string) error {
	for _, req := range prog.Imports {
		lib, err := r.load(req.LibBaseName, fromPath)
		if err != nil {
			return fmt.Errorf("import %q: %w", req.LibBaseName, err)
		}

		if err := r.mergeRequest(prog, req, lib); err != nil {
			return err
		}
	}

	return nil
}

// load resolves baseName relative to fromPath's directory, parses it if
// necessary, fully resolves its own imports into it, caches it, and returns
// the fully-resolved library tree (§4.3 steps 1-3).
func (r *Resolver) load(baseName, fromPath string) (*ast.Program, error) {
	path := resolveBasePath(baseName, fromPath)

	canon, err := canonicalize(path)
	if err != nil {
		return nil, fmt.Errorf("cannot find library file %q: %w", path, err)
	}

	for _, onStack := range r.stack {
		if onStack == canon {
			return nil, fmt.Errorf("circular import involving '%s'", canon)
		}
	}

	if cached, ok := r.cache[canon]; ok {
		return cached, nil
	}

	src, err := os.ReadFile(canon)
	if err != nil {
		return nil, fmt.Errorf("cannot read library file %q: %w", canon, err)
	}

	prog, err := syntax.NewParser(canon, string(src)).Parse()
	if err != nil {
		return nil, err
	}

	r.cache[canon] = prog
	r.stack = append(r.stack, canon)
	defer r.popStack()

	if err := r.resolveImportsInto(prog, canon); err != nil {
		return nil, err
	}

	return prog, nil
}

func (r *Resolver) popStack() {
	r.stack = r.stack[:len(r.stack)-1]
}

// resolveBasePath appends ".fusion" if baseName lacks it and resolves the
// result against the directory of the importing file (§4.3 step 1).
func resolveBasePath(baseName, fromPath string) string {
	name := baseName
	if !strings.HasSuffix(name, ".fusion") {
		name += ".fusion"
	}

	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(filepath.Dir(fromPath), name)
}

// canonicalize resolves symlinks so cycle detection and caching key on the
// same path regardless of how it was spelled (§4.3 step 2).
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// the file may not exist yet on a symlink-free path; fall back to
		// the absolute path so a plain "no such file" surfaces later.
		return abs, nil
	}

	return resolved, nil
}
