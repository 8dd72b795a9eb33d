package lox_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/golox/internal/lox"
)

// runProgram runs src against a fresh Session and returns stdout lines,
// whether Run reported success, and the session's reporter for
// inspecting any diagnostics.
func runProgram(t *testing.T, src string) (lines []string, ok bool, reporter *capturingReporter) {
	t.Helper()
	var out bytes.Buffer
	reporter = &capturingReporter{}
	session := lox.NewSession(reporter)
	session.SetStdout(&out)
	ok = lox.Run(src, session)
	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil, ok, reporter
	}
	return strings.Split(text, "\n"), ok, reporter
}

func TestInterpreterShadowingAcrossBlocks(t *testing.T) {
	lines, ok, reporter := runProgram(t, `
		var x = 1;
		{
			var x = 5;
			print x;
			{
				var x = x + 10;
				print x;
			}
			print x;
		}
		print x;
	`)
	require.True(t, ok, "diagnostics: %v", reporter.errs)
	assert.Equal(t, []string{"5", "15", "5", "1"}, lines)
}

func TestInterpreterClosureCounterCapturesByReference(t *testing.T) {
	lines, ok, reporter := runProgram(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	require.True(t, ok, "diagnostics: %v", reporter.errs)
	assert.Equal(t, []string{"1", "2", "3"}, lines)
}

func TestInterpreterClassInheritanceAndSuper(t *testing.T) {
	lines, ok, reporter := runProgram(t, `
		class Animal {
			speak() {
				return "...";
			}
			describe() {
				return "An animal says " + this.speak();
			}
		}
		class Dog < Animal {
			speak() {
				return "Woof, and " + super.speak();
			}
		}
		var d = Dog();
		print d.describe();
	`)
	require.True(t, ok, "diagnostics: %v", reporter.errs)
	assert.Equal(t, []string{"An animal says Woof, and ..."}, lines)
}

func TestInterpreterInitBindsThisAndReturnsInstance(t *testing.T) {
	lines, ok, reporter := runProgram(t, `
		class Point {
			init(x, y) {
				this.x = x;
				this.y = y;
			}
			sum() {
				return this.x + this.y;
			}
		}
		var p = Point(3, 4);
		print p.sum();
	`)
	require.True(t, ok, "diagnostics: %v", reporter.errs)
	assert.Equal(t, []string{"7"}, lines)
}

func TestInterpreterStringAndNumberPlusOverload(t *testing.T) {
	lines, ok, reporter := runProgram(t, `
		print 1 + 2;
		print "foo" + "bar";
	`)
	require.True(t, ok, "diagnostics: %v", reporter.errs)
	assert.Equal(t, []string{"3", "foobar"}, lines)
}

func TestInterpreterPlusTypeMismatchIsRuntimeError(t *testing.T) {
	_, ok, reporter := runProgram(t, `print 1 + "two";`)
	assert.False(t, ok)
	require.True(t, reporter.HadRuntimeError())
	assert.Contains(t, reporter.errs[0].Error(), "Operands must be two numbers or two strings")
}

func TestInterpreterLogicalOperatorsReturnOperandValue(t *testing.T) {
	lines, ok, reporter := runProgram(t, `
		print nil or "default";
		print "first" and "second";
		print false and "unreached";
	`)
	require.True(t, ok, "diagnostics: %v", reporter.errs)
	assert.Equal(t, []string{"default", "second", "false"}, lines)
}

func TestInterpreterLambdaAsValue(t *testing.T) {
	lines, ok, reporter := runProgram(t, `
		var add = fun (a, b) { return a + b; };
		print add(2, 3);
	`)
	require.True(t, ok, "diagnostics: %v", reporter.errs)
	assert.Equal(t, []string{"5"}, lines)
}

func TestInterpreterForLoopUndefinedVariableAbortsAfterPrinting(t *testing.T) {
	lines, ok, reporter := runProgram(t, `
		for (;;) {
			print 0;
			print y;
		}
	`)
	assert.False(t, ok)
	require.True(t, reporter.HadRuntimeError())
	require.Len(t, lines, 1)
	assert.Equal(t, "0", lines[0])
	assert.Contains(t, reporter.errs[0].Error(), "Undefined variable 'y'")
}

// A scan error doesn't abandon the program the way a parse/resolve
// error does: scanning continues past the bad character, and whatever
// statements parse out of the remaining tokens still run.
func TestInterpreterScanErrorDoesNotAbortExecution(t *testing.T) {
	lines, ok, reporter := runProgram(t, `print 1; @ print 2;`)
	assert.False(t, ok)
	require.True(t, reporter.HadError())
	assert.Contains(t, reporter.errs[0].Error(), "Unexpected character")
	assert.Equal(t, []string{"1", "2"}, lines)
}

func TestInterpreterUndefinedVariableLeavesGlobalsIntactAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	reporter := &capturingReporter{}
	session := lox.NewSession(reporter)
	session.SetStdout(&out)

	ok := lox.Run(`var x = 1;`, session)
	require.True(t, ok)

	ok = lox.Run(`print y;`, session)
	assert.False(t, ok)

	out.Reset()
	ok = lox.Run(`print x;`, session)
	require.True(t, ok)
	assert.Equal(t, "1\n", out.String())
}

func TestInterpreterArityMismatchIsRuntimeError(t *testing.T) {
	_, ok, reporter := runProgram(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	assert.False(t, ok)
	require.True(t, reporter.HadRuntimeError())
	assert.Contains(t, reporter.errs[0].Error(), "Expected 2 arguments but got 1")
}

func TestInterpreterCallingNonCallableIsRuntimeError(t *testing.T) {
	_, ok, reporter := runProgram(t, `
		var x = 1;
		x();
	`)
	assert.False(t, ok)
	require.True(t, reporter.HadRuntimeError())
	assert.Contains(t, reporter.errs[0].Error(), "Can only call functions and classes")
}

func TestInterpreterClockIsDeterministicWithFixedClock(t *testing.T) {
	reporter := &capturingReporter{}
	session := lox.NewSession(reporter)
	session.SetClock(func() time.Time { return time.Unix(1000, 0) })

	var out1, out2 bytes.Buffer
	session.SetStdout(&out1)
	require.True(t, lox.Run(`print clock();`, session))
	session.SetStdout(&out2)
	require.True(t, lox.Run(`print clock();`, session))

	assert.Equal(t, out1.String(), out2.String())
	assert.Equal(t, "1000\n", out1.String())
}

func TestInterpreterPrintGroupingEquivalence(t *testing.T) {
	lines1, ok1, _ := runProgram(t, `print (1 + 2);`)
	lines2, ok2, _ := runProgram(t, `print 1 + 2;`)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, lines2, lines1)
}
