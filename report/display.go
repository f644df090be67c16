package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// displayCompileError prints a single compile diagnostic in the
// "file:line:col: error: message" form required by §7, followed by a
// caret-underlined source excerpt when a position is available.
func displayCompileError(ce *CompileError) {
	label := pterm.LightRed("error")

	if ce.Pos == nil {
		if ce.FilePath == "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", label, ce.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", ce.FilePath, label, ce.Message)
		}
		return
	}

	fmt.Fprintf(
		os.Stderr, "%s:%d:%d: %s: %s\n",
		ce.FilePath, ce.Pos.StartLine, ce.Pos.StartCol, label, ce.Message,
	)

	displaySourceExcerpt(ce.FilePath, ce.Pos)
}

// displaySourceExcerpt prints the source lines covered by pos with a caret
// underline, matching the teacher's report.displaySourceText.
func displaySourceExcerpt(filePath string, pos *TextPosition) {
	file, err := os.Open(filePath)
	if err != nil {
		return
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 1; sc.Scan(); ln++ {
		if pos.StartLine <= ln && ln <= pos.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	maxLineNumLen := len(strconv.Itoa(pos.EndLine))
	lineNumFmt := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Fprintf(os.Stderr, lineNumFmt, i+pos.StartLine)
		fmt.Fprintln(os.Stderr, line)

		fmt.Fprint(os.Stderr, strings.Repeat(" ", maxLineNumLen), " | ")

		var prefix int
		if i == 0 {
			prefix = pos.StartCol - 1
			if prefix < 0 {
				prefix = 0
			}
		}

		var suffix int
		if i == len(lines)-1 && pos.EndCol <= len(line) {
			suffix = len(line) - pos.EndCol
		}

		carets := len(line) - prefix - suffix
		if carets < 1 {
			carets = 1
		}

		fmt.Fprint(os.Stderr, strings.Repeat(" ", prefix))
		fmt.Fprintln(os.Stderr, pterm.LightRed(strings.Repeat("^", carets)))
	}
}

// displayFatal prints a fatal, non-source diagnostic.
func displayFatal(message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", pterm.LightRed("compiler"), message)
}

// displayRuntimePanic prints a runtime panic surfaced from the JIT-executed
// program.
func displayRuntimePanic(message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", pterm.LightRed("compiler"), message)
}

// PhaseHeader announces the start of a compile phase when running verbose.
func PhaseHeader(target string) {
	if currentLogLevel() != LogLevelVerbose {
		return
	}

	pterm.DefaultHeader.WithFullWidth().Println("fusion " + target)
}

// PhaseDone announces the end of compilation, styled by whether any error was
// recorded.
func PhaseDone(outputDescr string) {
	if currentLogLevel() != LogLevelVerbose {
		return
	}

	if AnyErrors() {
		pterm.Error.Println("compilation failed")
	} else {
		pterm.Success.Printfln("compilation finished: %s", outputDescr)
	}
}
