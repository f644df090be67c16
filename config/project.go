// Package config loads the optional fusion.toml project manifest.
//
// Grounded on the teacher's depm/load_mod.go module-file loader: same
// "TOML struct, open file, unmarshal, validate, report fatal on failure"
// shape, using the same github.com/pelletier/go-toml dependency. Fusion has
// no package/module system (§4.3 splices imports by file, not by module),
// so unlike ChaiModule this holds only compiler-wide defaults, not a
// dependency graph.
package config

import (
	"io"
	"os"
	"path/filepath"

	"fusion/report"

	"github.com/pelletier/go-toml"
)

// ManifestFileName is the name of the optional per-project manifest.
const ManifestFileName = "fusion.toml"

// tomlProject mirrors fusion.toml's shape on disk.
type tomlProject struct {
	Name     string   `toml:"name"`
	Entry    string   `toml:"entry"`
	LibDirs  []string `toml:"lib-dirs"`
	OptLevel int      `toml:"opt-level"`
	DumpIR   bool     `toml:"dump-ir"`
}

// Project holds the resolved compiler configuration for one invocation,
// whether it came from a fusion.toml manifest or from defaults applied in
// its absence.
type Project struct {
	Name     string
	Entry    string
	LibDirs  []string
	OptLevel int
	DumpIR   bool
}

// defaultProject is what a bare `fusionc run main.fus` gets when no
// fusion.toml is present: the entry file is whatever was named on the
// command line, and nothing else is customized.
func defaultProject(entry string) *Project {
	return &Project{
		Name:  filepath.Base(entry),
		Entry: entry,
	}
}

// Load reads fusion.toml from dir if present, or returns defaultProject(entry)
// if it is absent. A malformed manifest is a fatal error, matching the
// teacher's LoadModule (a project that can't be parsed can't be compiled).
func Load(dir, entry string) *Project {
	path := filepath.Join(dir, ManifestFileName)

	f, err := os.Open(path)
	if err != nil {
		return defaultProject(entry)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		report.ReportFatal("error reading %s: %s", path, err.Error())
		return nil
	}

	var raw tomlProject
	if err := toml.Unmarshal(buf, &raw); err != nil {
		report.ReportFatal("error parsing %s: %s", path, err.Error())
		return nil
	}

	proj := &Project{
		Name:     raw.Name,
		Entry:    raw.Entry,
		LibDirs:  raw.LibDirs,
		OptLevel: raw.OptLevel,
		DumpIR:   raw.DumpIR,
	}

	if proj.Name == "" {
		proj.Name = filepath.Base(dir)
	}
	if proj.Entry == "" {
		proj.Entry = entry
	}
	if entry != "" {
		// A file named explicitly on the command line always wins over the
		// manifest's default entry point.
		proj.Entry = entry
	}

	return proj
}
