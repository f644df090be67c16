package imports

import (
	"os"
	"path/filepath"
	"testing"

	"fusion/syntax"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestResolveMergesExportedFunc(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "mathlib.fusion", `
		export fn square(x: i64) -> i64 {
			return x * x;
		}
	`)

	mainPath := writeFile(t, dir, "main.fusion", `
		import lib "mathlib" {
			fn square(x: i64) -> i64;
		};

		let y = square(4);
	`)

	src, err := os.ReadFile(mainPath)
	if err != nil {
		t.Fatalf("failed to read main file: %v", err)
	}

	prog, err := syntax.NewParser(mainPath, string(src)).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if err := NewResolver().Resolve(prog, mainPath); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if _, ok := prog.FindFunc("square"); !ok {
		t.Fatal("expected 'square' to be merged into the main program")
	}
}

func TestResolveRejectsUnexportedFunc(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "priv.fusion", `
		fn square(x: i64) -> i64 {
			return x * x;
		}
	`)

	mainPath := writeFile(t, dir, "main.fusion", `
		import lib "priv" {
			fn square(x: i64) -> i64;
		};
	`)

	src, _ := os.ReadFile(mainPath)
	prog, err := syntax.NewParser(mainPath, string(src)).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if err := NewResolver().Resolve(prog, mainPath); err == nil {
		t.Fatal("expected Resolve to reject an import of a non-exported function")
	}
}

func TestResolveDetectsCircularImport(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "a.fusion", `
		import lib "b" {
		};

		export fn fromA() -> i64 {
			return 1;
		}
	`)

	bPath := writeFile(t, dir, "b.fusion", `
		import lib "a" {
		};

		export fn fromB() -> i64 {
			return 2;
		}
	`)

	src, _ := os.ReadFile(bPath)
	prog, err := syntax.NewParser(bPath, string(src)).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if err := NewResolver().Resolve(prog, bPath); err == nil {
		t.Fatal("expected Resolve to detect the circular import between a.fusion and b.fusion")
	}
}

func TestResolveRejectsMissingLibrary(t *testing.T) {
	dir := t.TempDir()

	mainPath := writeFile(t, dir, "main.fusion", `
		import lib "nonexistent" {
		};
	`)

	src, _ := os.ReadFile(mainPath)
	prog, err := syntax.NewParser(mainPath, string(src)).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if err := NewResolver().Resolve(prog, mainPath); err == nil {
		t.Fatal("expected Resolve to fail for a missing library file")
	}
}
