package lox_test

import (
	"testing"

	"github.com/sdecook/golox/internal/lox"
)

// capturingReporter collects every reported diagnostic instead of
// writing them anywhere, so tests can assert on count and content.
type capturingReporter struct {
	errs            []error
	hadRuntimeError bool
}

func (r *capturingReporter) Report(err error) {
	if err == nil {
		return
	}
	r.errs = append(r.errs, err)
	if _, ok := err.(*lox.RuntimeError); ok {
		r.hadRuntimeError = true
	}
}

func (r *capturingReporter) HadError() bool        { return len(r.errs) > 0 }
func (r *capturingReporter) HadRuntimeError() bool { return r.hadRuntimeError }

func scanAll(t *testing.T, src string) []lox.Token {
	t.Helper()
	toks, _ := lox.NewScanner(src).Scan()
	return toks
}
