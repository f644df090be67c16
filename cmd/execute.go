package cmd

import (
	"os"

	"fusion/report"

	"github.com/ComedicChimera/olive"
)

// fusionVersion is the compiler's self-reported version string, shown by
// the version subcommand.
const fusionVersion = "0.1.0"

// Execute is the entry point for the `fusionc` CLI.
func Execute() {
	cli := olive.NewCLI("fusionc", "fusionc compiles and runs Fusion source files", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	runCmd := cli.AddSubcommand("run", "compile a Fusion file and execute it immediately", true)
	runCmd.AddPrimaryArg("entry-file", "the path to the Fusion source file to compile", true)
	runCmd.AddFlag("dump-ir", "ir", "print the generated LLVM IR to stderr before running")

	cli.AddSubcommand("version", "print the fusionc version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "run":
		execRunCommand(subResult, logLevelOf(result.Arguments["loglevel"].(string)))
	case "version":
		report.PhaseHeader("fusionc " + fusionVersion)
	default:
		report.ReportFatal("usage: fusionc run <entry-file>")
	}
}

// execRunCommand runs the compile-and-execute pipeline for the entry file
// named on the command line and terminates the process with a matching exit
// status.
func execRunCommand(result *olive.ArgParseResult, logLevel int) {
	report.InitReporter(logLevel)

	entryFile, _ := result.PrimaryArg()

	c := NewCompiler(entryFile)
	if dump, ok := result.Arguments["dump-ir"].(bool); ok && dump {
		c.proj.DumpIR = true
	}

	ok := c.Run()
	report.PhaseDone(c.entryPath)

	if !ok || report.AnyErrors() {
		os.Exit(1)
	}
}

// logLevelOf maps the CLI's --loglevel selector value to report's numeric
// log level enum.
func logLevelOf(s string) int {
	switch s {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}
