/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package eval

import "fmt"

/*
TypeError reports DOM-3 XPathException code 52: an invalid coercion, a
filter or predicate that is not a node-set when one is required, or a
result wrapper variant mismatch.
*/
type TypeError struct {
	Detail string
}

func (e *TypeError) Error() string { return fmt.Sprintf("type error: %s", e.Detail) }

/*
Code returns the DOM-3 XPathException code for this error kind.
*/
func (e *TypeError) Code() int { return 52 }

/*
EvalError is the generic evaluation error class: unknown function,
undeclared variable, unresolved QName prefix, an arity mismatch in a
built-in function, or a missing context node. Its message names the
offending identifier.
*/
type EvalError struct {
	Detail string
}

func (e *EvalError) Error() string { return e.Detail }

func typeErrorf(format string, args ...interface{}) error {
	return &TypeError{Detail: fmt.Sprintf(format, args...)}
}

func evalErrorf(format string, args ...interface{}) error {
	return &EvalError{Detail: fmt.Sprintf(format, args...)}
}
