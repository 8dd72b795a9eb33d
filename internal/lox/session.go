package lox

import (
	"io"
	"time"
)

// Session is the externally visible state that survives across
// multiple Run calls in a REPL: the global environment, plus the
// interpreter instance that owns it. A file execution typically uses a
// Session for exactly one Run.
type Session struct {
	interp   *Interpreter
	reporter Reporter
}

// NewSession creates a session reporting diagnostics through reporter
// and printing `print` output to stdout.
func NewSession(reporter Reporter) *Session {
	return &Session{interp: NewInterpreter(reporter), reporter: reporter}
}

// SetStdout redirects `print` output for this session.
func (s *Session) SetStdout(w io.Writer) { s.interp.SetStdout(w) }

// SetClock overrides clock()'s time source.
func (s *Session) SetClock(now func() time.Time) { s.interp.WithClock(now) }

// Run scans, parses, resolves, and evaluates source against the
// session's persistent global environment. A scan error is reported but
// does not abort the run — scanning continues past it and whatever
// tokens were produced still get parsed and evaluated; a parse/resolve
// error aborts before evaluation; a runtime error aborts evaluation but
// leaves globals intact for the next Run. The returned bool reports
// overall success (no diagnostic of any kind).
func Run(source string, session *Session) bool {
	scanner := NewScanner(source)
	tokens, scanErrs := scanner.Scan()
	for _, e := range scanErrs {
		session.reporter.Report(e)
	}

	parser := NewParser(tokens, session.reporter)
	stmts, ok := parser.Parse()
	if !ok {
		return false
	}

	resolver := NewResolver(session.reporter)
	resolver.Resolve(stmts)
	if resolver.HadError() {
		return false
	}

	session.interp.SetLocals(resolver.Locals)
	if err := session.interp.Interpret(stmts); err != nil {
		session.reporter.Report(err)
		return false
	}
	return len(scanErrs) == 0
}
