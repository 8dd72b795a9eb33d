package lox

import (
	"fmt"
	"strconv"
)

// Value is the runtime tagged union: Nil, bool, float64, string, or a
// Callable/*Instance. Go's interface dispatch plays the role of the
// tag; these concrete types are the only ones ever boxed in a Value.
type Value interface{}

// Nil is the sentinel for Lox's nil value. A typed nil so IsNil can
// distinguish it from a Go nil interface produced by a programming
// mistake elsewhere in the interpreter.
type NilValue struct{}

var Nil Value = NilValue{}

func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case bool:
		return val
	default:
		return true
	}
}

func IsNil(v Value) bool {
	_, ok := v.(NilValue)
	return ok
}

func AsNumber(v Value) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}

func AsString(v Value) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func AsBool(v Value) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// IsEqual implements Lox's == semantics: reflexive on identical
// variants, numbers by IEEE equality, strings by content, callables and
// instances by identity, never equal across types.
func IsEqual(a, b Value) bool {
	if IsNil(a) && IsNil(b) {
		return true
	}
	if IsNil(a) || IsNil(b) {
		return false
	}
	if an, ok := AsNumber(a); ok {
		if bn, ok := AsNumber(b); ok {
			return an == bn
		}
		return false
	}
	if as, ok := AsString(a); ok {
		if bs, ok := AsString(b); ok {
			return as == bs
		}
		return false
	}
	if ab, ok := AsBool(a); ok {
		if bb, ok := AsBool(b); ok {
			return ab == bb
		}
		return false
	}
	// Callables and instances compare by identity: Go interface equality
	// over pointer-shaped concrete types already does this.
	return a == b
}

// Stringify renders a Value the way `print` does: integral numbers
// without a trailing ".0", nil as "nil", instances as "<Class>
// instance", classes and functions by name/tag.
func Stringify(v Value) string {
	switch val := v.(type) {
	case NilValue:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case string:
		return val
	case *LoxClass:
		return val.Name
	case *LoxFunction:
		return fmt.Sprintf("<fn %s>", val.Name())
	case *LambdaFunction:
		return "<fn>"
	case *NativeFunction:
		return fmt.Sprintf("<native fn %s>", val.name)
	case *Instance:
		return val.Class.Name + " instance"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
