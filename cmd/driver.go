// Package cmd is the top-level driver package for the Fusion compiler: it
// owns the Compiler pipeline object and the olive-based CLI that drives it.
package cmd

import (
	"os"
	"path/filepath"

	"fusion/abi"
	"fusion/config"
	"fusion/imports"
	"fusion/irgen"
	"fusion/jit"
	"fusion/layout"
	"fusion/report"
	"fusion/sema"
	"fusion/syntax"

	_ "fusion/runtimert"
)

// Compiler owns one compile-and-run of a single entry file, carrying it
// through every stage of §4 in order: parse, resolve imports, lay out
// records, check, generate IR, and hand the module to the JIT.
type Compiler struct {
	entryPath string
	proj      *config.Project
}

// NewCompiler builds a Compiler for the entry file at entryPath, loading
// fusion.toml from its directory if present.
func NewCompiler(entryPath string) *Compiler {
	abs, err := filepath.Abs(entryPath)
	if err != nil {
		report.ReportFatal("cannot resolve %s: %s", entryPath, err.Error())
	}

	return &Compiler{
		entryPath: abs,
		proj:      config.Load(filepath.Dir(abs), abs),
	}
}

// Run drives the full pipeline. It returns whether the compile and run
// completed without error. A parse or semantic error is reported through
// report and makes Run return false; a failure to read the entry file,
// resolve imports or run the JIT is reported through report.ReportFatal,
// which exits the process.
func (c *Compiler) Run() bool {
	report.PhaseHeader("parse " + c.entryPath)

	src, err := os.ReadFile(c.entryPath)
	if err != nil {
		report.ReportFatal("cannot read %s: %s", c.entryPath, err.Error())
	}

	parser := syntax.NewParser(c.entryPath, string(src))
	prog, err := parser.Parse()
	if err != nil {
		if ce, ok := err.(*report.CompileError); ok {
			report.ReportCompileError(ce)
		}
		return false
	}

	report.PhaseHeader("resolve imports")
	if err := imports.NewResolver().Resolve(prog, c.entryPath); err != nil {
		report.ReportFatal("%s", err.Error())
	}

	report.PhaseHeader("check")
	layouts := layout.Build(prog.Records)
	if !sema.NewAnalyzer(c.entryPath, prog, layouts).Analyze() {
		return false
	}

	report.PhaseHeader("generate")
	mod := irgen.NewEmitter(prog, layouts).Emit()

	if c.proj.DumpIR {
		os.Stderr.WriteString(mod.String())
	}

	report.PhaseHeader("run " + abi.EntryFunc)
	if err := jit.Run(mod); err != nil {
		report.ReportFatal("%s", err.Error())
	}

	return true
}
