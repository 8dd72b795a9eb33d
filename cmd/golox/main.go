// Command golox runs the Lox tree-walking interpreter: given a script
// path it executes the file and exits; with no argument it starts an
// interactive REPL.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/sdecook/golox/internal/lox"
)

const usage = "Usage: golox [script]"

func main() {
	noColor := flag.Bool("no-color", false, "Disable colored diagnostic output.")
	clockSeed := flag.Int64("clock-seed", 0, "If nonzero, clock() always returns this many seconds past the Unix epoch instead of wall-clock time.")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	args := flag.Args()
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(64)
	}

	if len(args) == 1 {
		runFile(args[0], *clockSeed)
		return
	}
	runPrompt(*clockSeed)
}

// runFile executes a script then exits with a status reflecting
// whether a scan/parse/resolve error (65) or a runtime error (70)
// occurred, per sysexits convention.
func runFile(path string, clockSeed int64) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't open file at '%s'.\n", path)
		os.Exit(66)
	}

	reporter := lox.NewWriterReporter(coloredStderr{})
	session := lox.NewSession(reporter)
	applyClockSeed(session, clockSeed)

	lox.Run(string(data), session)

	switch {
	case reporter.HadRuntimeError():
		os.Exit(70)
	case reporter.HadError():
		os.Exit(65)
	}
}

// runPrompt reads one line at a time, executing each against the same
// Session so globals (variables, functions, classes) persist across
// lines.
func runPrompt(clockSeed int64) {
	reporter := lox.NewWriterReporter(coloredStderr{})
	session := lox.NewSession(reporter)
	applyClockSeed(session, clockSeed)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		lox.Run(scanner.Text(), session)
	}
}

func applyClockSeed(session *lox.Session, seed int64) {
	if seed == 0 {
		return
	}
	session.SetClock(func() time.Time { return time.Unix(seed, 0) })
}

// coloredStderr wraps os.Stderr so diagnostics print in red. The core's
// Reporter only needs an io.Writer, so coloring lives entirely at this
// boundary.
type coloredStderr struct{}

func (coloredStderr) Write(p []byte) (int, error) {
	if _, err := color.New(color.FgRed).Fprint(os.Stderr, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
