/*
Package funcalg turns ordinary Go functions into algebraic objects.

# Overview

Funcalg wraps callables in a Function type that supports arithmetic,
comparison, and boolean operators as well as composition. Combining
wrapped functions produces new wrapped functions that evaluate lazily:
nothing runs until the result is called. Names and descriptions
propagate through every combination, so a built-up expression can always
say what it computes.

# Quick Example

Build 2*x^3 from the identity function and read it back:

	x := funcalg.Identity(funcalg.WithName("x"))
	f := x.Pow(3.0).RMul(2.0)

	f.Name()    // "(2 * (x ** 3))"
	f.Doc()     // "Computes (2 * (x ** 3))(...)."
	f.Call(5.0) // 250.0

Composition reads left to right, with the inner function named first:

	g := x.Add(1.0)                  // "(x + 1)"
	h := f.Compose(g).(*funcalg.Function)

	h.Name()    // "(x + 1); (2 * (x ** 3))"
	h.Call(4.0) // 250.0

# Core Concepts

Lifting: every operator method returns a new Function whose call applies
the operator to its operands' results. Operands may be other Functions,
plain functions, or constants; constants are captured once at lift time:

	f.Add(g)   // (f + g)(x) = f(x) + g(x)
	f.Mul(2.0) // (f * 2)(x) = f(x) * 2
	f.RSub(1.0) // (1 - f)(x) = 1 - f(x)

Composition: Compose applies the argument first, RCompose applies the
receiver first. Composing with a constant collapses to a direct call,
and reverse-composing with a constant fills the constant into the shape
of the input:

	f.Compose(g)    // f(g(x))
	f.Compose(5.0)  // f(5.0), evaluated immediately
	f.RCompose(1.0) // ones in the shape of f's input

Provenance: each Function carries the set of leaf callables it was built
from. Operator results union their operands' sets; constants contribute
nothing:

	h.Components().Names() // ["x"]

Value domain: calls operate on float64 and bool scalars and []float64
and []bool vectors. Integer and float32 inputs are normalized, scalars
broadcast across vectors, and comparisons produce elementwise booleans.
Shape or type violations panic the way gonum's floats package does.

# Available Surface

Construction:
  - New: wrap a callable, with WithName and WithDoc options
  - Identity: the id function, the usual starting point for expressions
  - Must: panic-on-error construction for tests and package setup
  - Elementwise: adapt a scalar math function to scalars and vectors

Operators:
  - Add, Sub, Mul, Div, FloorDiv, Mod, Pow and their R-variants
  - Eq, Ne, Lt, Le, Gt, Ge
  - And, Or, Xor
  - Neg, Pos, Abs
  - LiftBinary, LiftUnary, Symbols: the table-driven generic entry points

Composition:
  - Compose, RCompose, Composed, Partial

Introspection:
  - Name, SetName, Doc, String, Components, MarshalJSON

# Error Handling

Construction-time problems are errors: ErrNotCallable from New,
ErrNegativeCount from Composed, ErrUnknownOperator from the lift entry
points. Call-time problems are panics: argument-count mismatches, shape
mismatches, and unsupported operand types propagate unchanged, as do
panics raised by wrapped callables themselves.

# Package Import

	import "github.com/Pure-Company/funcalg"
*/
package funcalg
