package lox

import (
	"fmt"
	"io"
)

// Reporter receives line-tagged diagnostics from every stage of the
// pipeline. The core never writes directly to stdout/stderr for
// diagnostics; cmd/golox supplies the concrete Reporter and decides how
// (and whether) to colorize it.
type Reporter interface {
	Report(err error)
	HadError() bool
	HadRuntimeError() bool
}

// WriterReporter writes "Error (<line>): <message>" lines to an
// io.Writer and tracks whether a scan/parse/resolve error or a runtime
// error was seen, so a driver can pick the right exit code.
type WriterReporter struct {
	w               io.Writer
	hadError        bool
	hadRuntimeError bool
}

func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

func (r *WriterReporter) Report(err error) {
	if err == nil {
		return
	}
	if _, ok := err.(*RuntimeError); ok {
		r.hadRuntimeError = true
	} else {
		r.hadError = true
	}
	fmt.Fprintln(r.w, err.Error())
}

func (r *WriterReporter) HadError() bool        { return r.hadError }
func (r *WriterReporter) HadRuntimeError() bool { return r.hadRuntimeError }

// ScanError reports an unknown character or an unterminated string.
type ScanError struct {
	Line    int
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("Error (%d): %s", e.Line, e.Message)
}

// ParseError reports an unexpected or missing token, or an invalid
// assignment target.
type ParseError struct {
	Token   Token
	Message string
}

func (e *ParseError) Error() string {
	where := "end"
	if e.Token.Type != EOF {
		where = "'" + e.Token.Lexeme + "'"
	}
	return fmt.Sprintf("Error (%d): at %s: %s", e.Token.Line(), where, e.Message)
}

// ResolveError reports a static binding problem: self-reference during
// definition, duplicate local declaration, return outside a function,
// a bad this/super context, or an invalid superclass.
type ResolveError struct {
	Token   Token
	Message string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("Error (%d): %s", e.Token.Line(), e.Message)
}

// RuntimeError reports a type mismatch, undefined variable/property,
// arity mismatch, or non-callable callee. It aborts the current Run but
// leaves the session's global environment intact.
type RuntimeError struct {
	Token   Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Error (%d): %s", e.Token.Line(), e.Message)
}
