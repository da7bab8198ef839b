// Package hamlet is a tiny expectation helper for tests: to be, or not to be.
package hamlet

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type Hamlet struct {
	t      testing.TB
	expect bool
	prefix string
}

// Specifications returns positive and negative expectation helpers bound to t.
func Specifications(t testing.TB) (*Hamlet, *Hamlet) {
	return &Hamlet{t: t, expect: true, prefix: "must be"}, &Hamlet{t: t, expect: false, prefix: "wont be"}
}

func (it *Hamlet) check(outcome bool, form string, details ...interface{}) {
	it.t.Helper()
	if outcome != it.expect {
		it.t.Fatalf(it.prefix+" "+form, details...)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	actual := reflect.ValueOf(value)
	switch actual.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return actual.IsNil()
	}
	return false
}

func (it *Hamlet) Nil(value interface{}) {
	it.t.Helper()
	it.check(isNil(value), "nil, got: %#v", value)
}

func (it *Hamlet) True(value bool) {
	it.t.Helper()
	it.check(value, "true")
}

func (it *Hamlet) Equal(expected, actual interface{}) {
	it.t.Helper()
	it.check(reflect.DeepEqual(expected, actual), "equal, expected: %#v, actual: %#v", expected, actual)
}

func (it *Hamlet) Text(expected string, actual interface{}) {
	it.t.Helper()
	text, ok := actual.(string)
	if !ok {
		if stringer, yes := actual.(interface{ String() string }); yes {
			text = stringer.String()
		}
	}
	it.check(expected == text, "text %q, actual: %q", expected, text)
}

func (it *Hamlet) Contains(fragment, text string) {
	it.t.Helper()
	it.check(strings.Contains(text, fragment), "containing %q in %q", fragment, text)
}

func (it *Hamlet) Length(expected int, value interface{}) {
	it.t.Helper()
	size := reflect.ValueOf(value).Len()
	it.check(expected == size, "length %d, actual: %d", expected, size)
}

// ErrorAs checks whether err matches target via errors.As.
func (it *Hamlet) ErrorAs(err error, target interface{}) {
	it.t.Helper()
	it.check(err != nil && errors.As(err, target), "error as %T, got: %v", target, err)
}

func (it *Hamlet) Panic(todo func()) {
	it.t.Helper()
	panicked := func() (result bool) {
		defer func() {
			if recover() != nil {
				result = true
			}
		}()
		todo()
		return false
	}()
	it.check(panicked, "panic")
}
