package funcalg

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"gonum.org/v1/gonum/floats"
)

// ============================================================================
// Errors and Options
// ============================================================================

var (
	// ErrNotCallable reports a New argument that cannot be adapted to a Target.
	ErrNotCallable = errors.New("funcalg: not callable")

	// ErrNegativeCount reports a negative self-composition count.
	ErrNegativeCount = errors.New("funcalg: count must be non-negative")

	// ErrUnknownOperator reports a lift with a symbol outside the operator table.
	ErrUnknownOperator = errors.New("funcalg: unknown operator")
)

// Option configures a Function during construction.
type Option func(*Function)

// WithName sets the wrapper's name, overriding the derived or inherited one.
func WithName(name string) Option {
	return func(f *Function) {
		f.name = name
	}
}

// WithDoc sets the wrapper's description.
func WithDoc(doc string) Option {
	return func(f *Function) {
		f.doc = doc
	}
}

// ============================================================================
// Components
// ============================================================================

// Component identifies one leaf callable inside a composed Function.
// Operator lifting and composition carry components forward, so any
// derived function can report which leaves it was built from.
type Component struct {
	id     uuid.UUID
	name   string
	target Target
}

func newComponent(name string, target Target) *Component {
	return &Component{id: uuid.New(), name: name, target: target}
}

// ID returns the identifier assigned when the leaf was wrapped.
func (c *Component) ID() uuid.UUID {
	return c.id
}

// Name returns the leaf's name at wrap time.
func (c *Component) Name() string {
	return c.name
}

// Call invokes the leaf callable directly.
func (c *Component) Call(args ...any) any {
	return c.target(args...)
}

// Components is the set of leaf callables a Function was built from.
// Constants picked up along the way contribute nothing, so the set tracks
// provenance only.
type Components map[*Component]struct{}

// Len returns the number of leaves.
func (s Components) Len() int {
	return len(s)
}

// Contains reports whether c is one of the leaves.
func (s Components) Contains(c *Component) bool {
	_, ok := s[c]
	return ok
}

// Union returns a new set holding the leaves of both sets.
func (s Components) Union(other Components) Components {
	out := make(Components, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold exactly the same leaves.
func (s Components) Equal(other Components) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if _, ok := other[c]; !ok {
			return false
		}
	}
	return true
}

// Names returns the leaf names in sorted order.
func (s Components) Names() []string {
	names := make([]string, 0, len(s))
	for c := range s {
		names = append(names, c.name)
	}
	sort.Strings(names)
	return names
}

func (s Components) clone() Components {
	out := make(Components, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// ============================================================================
// Function Construction
// ============================================================================

// Target is the call shape every wrapped function is adapted to.
type Target func(args ...any) any

// Caller is the invocable contract shared by Function, Component, and any
// user type that wants to participate in lifts and composition.
type Caller interface {
	Call(args ...any) any
}

// Function wraps a callable so it can be combined with arithmetic,
// comparison, and boolean operators and composed into pipelines. Results
// of those combinations are new Functions that evaluate lazily when
// called.
//
// Example:
//
//	x := funcalg.Identity(funcalg.WithName("x"))
//	f := x.Pow(3.0).RMul(2.0)
//
//	f.Name()    // "(2 * (x ** 3))"
//	f.Call(5.0) // 250.0
type Function struct {
	target     Target
	name       string
	doc        string
	leaf       *Component
	components Components
}

// New wraps fn in a Function. fn may be a Target, a plain function in one
// of the adapted shapes, an existing *Function (unwrapped, inheriting its
// name and leaf identity), a *Component (re-wrapped around the same
// leaf), or any Caller (adapted through its Call method). Everything
// else fails with ErrNotCallable.
//
// Adapted shapes besides Target itself:
//
//	func(...any) any
//	func(any) any
//	func(float64) float64
//	func(float64, float64) float64
//	func([]float64) []float64
//
// The fixed-arity shapes check their argument count on every call and
// panic on mismatch.
func New(fn any, opts ...Option) (*Function, error) {
	f := &Function{}
	switch v := fn.(type) {
	case *Function:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *Function", ErrNotCallable)
		}
		f.target = v.target
		f.name = v.name
		f.doc = v.doc
		f.leaf = v.leaf
	case *Component:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *Component", ErrNotCallable)
		}
		f.target = v.target
		f.name = v.name
		f.leaf = v
	case Caller:
		f.target = Target(v.Call)
		f.name = operandName(v)
	default:
		target, ok := coerceTarget(fn)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotCallable, fn)
		}
		f.target = target
		f.name = funcName(fn)
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.leaf == nil {
		f.leaf = newComponent(f.name, f.target)
	}
	f.components = Components{f.leaf: {}}
	return f, nil
}

// Must returns f, panicking if err is non-nil.
func Must(f *Function, err error) *Function {
	if err != nil {
		panic(err)
	}
	return f
}

// Identity returns the function that returns its single argument
// unchanged. The default name is "id".
func Identity(opts ...Option) *Function {
	f := &Function{
		target: func(args ...any) any {
			arity(1, len(args))
			return args[0]
		},
		name: "id",
		doc:  "Returns its argument unchanged.",
	}
	for _, opt := range opts {
		opt(f)
	}
	f.leaf = newComponent(f.name, f.target)
	f.components = Components{f.leaf: {}}
	return f
}

// Call invokes the wrapped callable. Panics raised by the callable
// propagate unchanged.
func (f *Function) Call(args ...any) any {
	return f.target(args...)
}

// Name returns the wrapper's name.
func (f *Function) Name() string {
	return f.name
}

// SetName renames the wrapper. Leaf components keep the name they were
// created with.
func (f *Function) SetName(name string) {
	f.name = name
}

// Doc returns the wrapper's description.
func (f *Function) Doc() string {
	return f.doc
}

// String implements fmt.Stringer.
func (f *Function) String() string {
	return fmt.Sprintf("Function(%q)", f.name)
}

// Components returns a copy of the provenance set.
func (f *Function) Components() Components {
	return f.components.clone()
}

// MarshalJSON implements json.Marshaler. The encoding carries the name,
// description, and provenance leaves; functions cannot be revived from
// it.
func (f *Function) MarshalJSON() ([]byte, error) {
	type leaf struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	comps := make([]*Component, 0, len(f.components))
	for c := range f.components {
		comps = append(comps, c)
	}
	sort.Slice(comps, func(i, j int) bool {
		if comps[i].name != comps[j].name {
			return comps[i].name < comps[j].name
		}
		return comps[i].id.String() < comps[j].id.String()
	})
	leaves := make([]leaf, len(comps))
	for i, c := range comps {
		leaves[i] = leaf{ID: c.id.String(), Name: c.name}
	}
	return jsoniter.ConfigFastest.Marshal(struct {
		Name       string `json:"name"`
		Doc        string `json:"doc,omitempty"`
		Components []leaf `json:"components"`
	}{Name: f.name, Doc: f.doc, Components: leaves})
}

// derived builds a Function produced by lifting or composition. A nil
// provenance set means the function is its own single leaf.
func derived(target Target, name, doc string, comps Components) *Function {
	f := &Function{target: target, name: name, doc: doc}
	f.leaf = newComponent(name, target)
	if comps == nil {
		comps = Components{f.leaf: {}}
	}
	f.components = comps
	return f
}

// coerceTarget adapts the accepted function shapes to Target.
func coerceTarget(fn any) (Target, bool) {
	switch f := fn.(type) {
	case Target:
		if f == nil {
			return nil, false
		}
		return f, true
	case func(args ...any) any:
		if f == nil {
			return nil, false
		}
		return Target(f), true
	case func(any) any:
		if f == nil {
			return nil, false
		}
		return func(args ...any) any {
			arity(1, len(args))
			return f(args[0])
		}, true
	case func(float64) float64:
		if f == nil {
			return nil, false
		}
		return func(args ...any) any {
			arity(1, len(args))
			return f(toScalar(args[0]))
		}, true
	case func(float64, float64) float64:
		if f == nil {
			return nil, false
		}
		return func(args ...any) any {
			arity(2, len(args))
			return f(toScalar(args[0]), toScalar(args[1]))
		}, true
	case func([]float64) []float64:
		if f == nil {
			return nil, false
		}
		return func(args ...any) any {
			arity(1, len(args))
			v, ok := normalize(args[0]).([]float64)
			if !ok {
				panic(fmt.Sprintf("funcalg: expected a numeric vector, got %T", args[0]))
			}
			return f(v)
		}, true
	}
	return nil, false
}

// arity panics unless the argument count matches.
func arity(want, got int) {
	if got != want {
		panic(fmt.Sprintf("funcalg: wrong argument count: expected %d, got %d", want, got))
	}
}

// funcName derives a readable name for a raw Go function value from its
// runtime symbol, trimmed of package qualifiers.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Sprint(fn)
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return fmt.Sprint(fn)
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if name == "" {
		return fmt.Sprint(fn)
	}
	return name
}

// ============================================================================
// Composition
// ============================================================================

// Compose returns the composition of f with other, applying other first.
// When other is a constant rather than a callable, the composition
// degenerates to a direct application: f is called with the constant
// immediately and the raw result is returned instead of a new Function.
func (f *Function) Compose(other any) any {
	o := resolveOperand(other)
	if o.call == nil {
		return f.target(o.value)
	}
	return composeOperands(f.operand(), o)
}

// RCompose returns the composition of other with f, applying f first.
// When other is a constant it is lifted into a function that reproduces
// the constant in the shape of its input (vectors are filled, scalars
// pass the constant through), and that function is composed normally.
func (f *Function) RCompose(other any) *Function {
	o := resolveOperand(other)
	if o.call == nil {
		o = fillOperand(other)
	}
	return composeOperands(o, f.operand())
}

// Composed returns f composed with itself a total of n times. Zero means
// the identity function, one is f itself, and negative counts fail with
// ErrNegativeCount.
func (f *Function) Composed(n int) (*Function, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	if n == 0 {
		return Identity(), nil
	}
	g := f
	for i := 1; i < n; i++ {
		g = composeOperands(g.operand(), f.operand())
	}
	return g, nil
}

// Partial returns a new Function that calls f with args prepended to the
// call's own arguments. The result is a fresh leaf: its provenance does
// not carry f's components.
func (f *Function) Partial(args ...any) *Function {
	bound := append([]any(nil), args...)
	target := func(callArgs ...any) any {
		all := make([]any, 0, len(bound)+len(callArgs))
		all = append(all, bound...)
		all = append(all, callArgs...)
		return f.target(all...)
	}
	name := "partial(" + f.name + ")"
	return derived(target, name, "Computes "+name+"(...).", nil)
}

// composeOperands builds outer applied after inner.
func composeOperands(outer, inner operand) *Function {
	name := inner.name + "; " + outer.name
	target := func(args ...any) any {
		return outer.call(inner.call(args...))
	}
	doc := fmt.Sprintf("Applies the functions %s from left to right.", name)
	return derived(target, name, doc, outer.components.Union(inner.components))
}

// fillOperand lifts a constant into an invocable operand whose result
// matches the shape of its input.
func fillOperand(v any) operand {
	name := operandName(v)
	target := func(args ...any) any {
		arity(1, len(args))
		return fillLike(args[0], v)
	}
	c := newComponent(name, target)
	return operand{call: target, name: name, components: Components{c: {}}}
}

// ============================================================================
// Operator Table and Registration
// ============================================================================

// opEntry is one row of the operator table: the operator-module style
// name, the printable symbol, the documentation template the operator
// inherits, and the kernel that evaluates it. Unary entries set unary,
// binary entries set binary; reversed marks the binary entries that also
// exist in swapped-operand form.
type opEntry struct {
	name     string
	symbol   string
	docTmpl  string
	reversed bool
	binary   func(x, y any) any
	unary    func(x any) any

	doc  string // operand-substituted template, filled at registration
	rdoc string // swapped-operand form, reversed entries only
}

// operatorTable is the fixed set of liftable operators. Reversed
// variants exist exactly for the arithmetic entries.
var operatorTable = []opEntry{
	{name: "abs", symbol: "abs", docTmpl: "Same as abs(a).", unary: kernelAbs},
	{name: "neg", symbol: "-", docTmpl: "Same as -a.", unary: kernelNeg},
	{name: "pos", symbol: "+", docTmpl: "Same as +a.", unary: kernelPos},

	{name: "add", symbol: "+", docTmpl: "Same as a + b.", reversed: true, binary: kernelAdd},
	{name: "sub", symbol: "-", docTmpl: "Same as a - b.", reversed: true, binary: kernelSub},
	{name: "mul", symbol: "*", docTmpl: "Same as a * b.", reversed: true, binary: kernelMul},
	{name: "truediv", symbol: "/", docTmpl: "Same as a / b.", reversed: true, binary: kernelDiv},
	{name: "floordiv", symbol: "//", docTmpl: "Same as a // b.", reversed: true, binary: kernelFloorDiv},
	{name: "mod", symbol: "%", docTmpl: "Same as a % b.", reversed: true, binary: kernelMod},
	{name: "pow", symbol: "**", docTmpl: "Same as a ** b.", reversed: true, binary: kernelPow},

	{name: "eq", symbol: "==", docTmpl: "Same as a==b.", binary: kernelEq},
	{name: "ne", symbol: "!=", docTmpl: "Same as a!=b.", binary: kernelNe},
	{name: "lt", symbol: "<", docTmpl: "Same as a<b.", binary: kernelLt},
	{name: "le", symbol: "<=", docTmpl: "Same as a<=b.", binary: kernelLe},
	{name: "gt", symbol: ">", docTmpl: "Same as a>b.", binary: kernelGt},
	{name: "ge", symbol: ">=", docTmpl: "Same as a>=b.", binary: kernelGe},

	{name: "and", symbol: "&", docTmpl: "Same as a & b.", binary: kernelAnd},
	{name: "or", symbol: "|", docTmpl: "Same as a | b.", binary: kernelOr},
	{name: "xor", symbol: "^", docTmpl: "Same as a ^ b.", binary: kernelXor},
}

var (
	unaryOps  map[string]*opEntry
	binaryOps map[string]*opEntry
)

func init() {
	unaryOps, binaryOps = buildRegistry(operatorTable, slog.Default())
}

// buildRegistry validates the operator table and indexes it by symbol.
// Entries whose documentation template cannot be rewritten are left out:
// silently for unary operators, with a diagnostic for binary ones.
func buildRegistry(table []opEntry, logger *slog.Logger) (unary, binary map[string]*opEntry) {
	unary = make(map[string]*opEntry, len(table))
	binary = make(map[string]*opEntry, len(table))
	for i := range table {
		e := table[i]
		doc, err := operatorDoc(e.docTmpl, "self", "other")
		if err != nil {
			if e.unary == nil {
				logger.Warn("binary operator not available", "operator", e.name, "reason", err)
			}
			continue
		}
		e.doc = doc
		if e.unary != nil {
			unary[e.symbol] = &e
			continue
		}
		if e.reversed {
			e.rdoc, _ = operatorDoc(e.docTmpl, "other", "self")
		}
		binary[e.symbol] = &e
	}
	return unary, binary
}

// operatorDoc rewrites an operator description template, replacing the
// operand placeholders a and b at punctuation boundaries with the given
// names. Templates outside the "Same as ..." form are rejected.
func operatorDoc(tmpl, a, b string) (string, error) {
	if strings.Contains(tmpl, "Return") {
		return "", fmt.Errorf("funcalg: %q is not a symbol template", tmpl)
	}
	out := tmpl
	for _, punc := range []string{" ", ",", ".", ")"} {
		out = strings.ReplaceAll(out, "a"+punc, a+punc)
		out = strings.ReplaceAll(out, "b"+punc, b+punc)
	}
	return out, nil
}

// Symbols returns the registered operator symbols in sorted order. A
// symbol with both unary and binary uses is listed once.
func Symbols() []string {
	seen := make(map[string]struct{}, len(unaryOps)+len(binaryOps))
	for sym := range unaryOps {
		seen[sym] = struct{}{}
	}
	for sym := range binaryOps {
		seen[sym] = struct{}{}
	}
	syms := make([]string, 0, len(seen))
	for sym := range seen {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// ============================================================================
// Lifting
// ============================================================================

// operand is one side of a lift, resolved once into either an invocable
// or a constant. call is nil for constants.
type operand struct {
	call       Target
	value      any
	name       string
	components Components
}

func (f *Function) operand() operand {
	return operand{call: f.target, name: f.name, components: f.components}
}

// resolveOperand classifies a lift operand. Wrappers keep their
// provenance, other invocables become fresh leaves, and everything else
// is a constant contributing no provenance.
func resolveOperand(v any) operand {
	switch x := v.(type) {
	case *Function:
		if x == nil {
			return operand{name: "<nil>", components: Components{}}
		}
		return x.operand()
	case *Component:
		if x == nil {
			return operand{name: "<nil>", components: Components{}}
		}
		return operand{call: x.target, name: x.name, components: Components{x: {}}}
	case Caller:
		t := Target(x.Call)
		c := newComponent(operandName(v), t)
		return operand{call: t, name: c.name, components: Components{c: {}}}
	}
	if t, ok := coerceTarget(v); ok {
		c := newComponent(funcName(v), t)
		return operand{call: t, name: c.name, components: Components{c: {}}}
	}
	return operand{value: v, name: operandName(v), components: Components{}}
}

// operandName resolves an operand's display name: named values first,
// then raw functions by runtime symbol, then the printed value.
func operandName(v any) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Func {
		return funcName(v)
	}
	return fmt.Sprint(v)
}

// liftBinary builds the lazy combination of two resolved operands. The
// left operand is evaluated before the right one on every call.
func liftBinary(e *opEntry, left, right any) *Function {
	lo, ro := resolveOperand(left), resolveOperand(right)
	name := fmt.Sprintf("(%s %s %s)", lo.name, e.symbol, ro.name)

	var target Target
	switch {
	case lo.call != nil && ro.call != nil:
		target = func(args ...any) any {
			a := lo.call(args...)
			b := ro.call(args...)
			return e.binary(a, b)
		}
	case lo.call != nil:
		target = func(args ...any) any {
			return e.binary(lo.call(args...), ro.value)
		}
	case ro.call != nil:
		target = func(args ...any) any {
			return e.binary(lo.value, ro.call(args...))
		}
	default:
		target = func(args ...any) any {
			return e.binary(lo.value, ro.value)
		}
	}

	doc := fmt.Sprintf("Computes %s(...).", name)
	return derived(target, name, doc, lo.components.Union(ro.components))
}

// liftUnary builds the lazy application of a unary operator.
func liftUnary(e *opEntry, x any) *Function {
	o := resolveOperand(x)
	name := fmt.Sprintf("(%s %s)", e.symbol, o.name)

	var target Target
	if o.call != nil {
		target = func(args ...any) any {
			return e.unary(o.call(args...))
		}
	} else {
		target = func(args ...any) any {
			return e.unary(o.value)
		}
	}

	doc := fmt.Sprintf("Computes %s(...).", name)
	return derived(target, name, doc, o.components)
}

// LiftBinary builds the lazy combination of two operands under the named
// binary operator symbol. Either operand may be a Function, another
// invocable, or a constant; two constants produce a constant-valued
// Function. Unknown symbols fail with ErrUnknownOperator.
func LiftBinary(symbol string, left, right any) (*Function, error) {
	e, ok := binaryOps[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, symbol)
	}
	return liftBinary(e, left, right), nil
}

// LiftUnary builds the lazy application of the named unary operator
// symbol. Unknown symbols fail with ErrUnknownOperator.
func LiftUnary(symbol string, x any) (*Function, error) {
	e, ok := unaryOps[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, symbol)
	}
	return liftUnary(e, x), nil
}

func lift2(symbol string, left, right any) *Function {
	e, ok := binaryOps[symbol]
	if !ok {
		panic(fmt.Sprintf("funcalg: binary operator %q is not registered", symbol))
	}
	return liftBinary(e, left, right)
}

func lift1(symbol string, x any) *Function {
	e, ok := unaryOps[symbol]
	if !ok {
		panic(fmt.Sprintf("funcalg: unary operator %q is not registered", symbol))
	}
	return liftUnary(e, x)
}

// ============================================================================
// Operator Methods
// ============================================================================

// Add returns the lazy elementwise sum (f + other).
func (f *Function) Add(other any) *Function {
	return lift2("+", f, other)
}

// RAdd returns the lazy elementwise sum with operands reversed (other + f).
func (f *Function) RAdd(other any) *Function {
	return lift2("+", other, f)
}

// Sub returns the lazy elementwise difference (f - other).
func (f *Function) Sub(other any) *Function {
	return lift2("-", f, other)
}

// RSub returns the lazy elementwise difference with operands reversed (other - f).
func (f *Function) RSub(other any) *Function {
	return lift2("-", other, f)
}

// Mul returns the lazy elementwise product (f * other).
func (f *Function) Mul(other any) *Function {
	return lift2("*", f, other)
}

// RMul returns the lazy elementwise product with operands reversed (other * f).
func (f *Function) RMul(other any) *Function {
	return lift2("*", other, f)
}

// Div returns the lazy elementwise quotient (f / other).
func (f *Function) Div(other any) *Function {
	return lift2("/", f, other)
}

// RDiv returns the lazy elementwise quotient with operands reversed (other / f).
func (f *Function) RDiv(other any) *Function {
	return lift2("/", other, f)
}

// FloorDiv returns the lazy floored quotient (f // other).
func (f *Function) FloorDiv(other any) *Function {
	return lift2("//", f, other)
}

// RFloorDiv returns the lazy floored quotient with operands reversed (other // f).
func (f *Function) RFloorDiv(other any) *Function {
	return lift2("//", other, f)
}

// Mod returns the lazy floored remainder (f % other).
func (f *Function) Mod(other any) *Function {
	return lift2("%", f, other)
}

// RMod returns the lazy floored remainder with operands reversed (other % f).
func (f *Function) RMod(other any) *Function {
	return lift2("%", other, f)
}

// Pow returns the lazy elementwise power (f ** other).
func (f *Function) Pow(other any) *Function {
	return lift2("**", f, other)
}

// RPow returns the lazy elementwise power with operands reversed (other ** f).
func (f *Function) RPow(other any) *Function {
	return lift2("**", other, f)
}

// Eq returns the lazy elementwise comparison (f == other).
func (f *Function) Eq(other any) *Function {
	return lift2("==", f, other)
}

// Ne returns the lazy elementwise comparison (f != other).
func (f *Function) Ne(other any) *Function {
	return lift2("!=", f, other)
}

// Lt returns the lazy elementwise comparison (f < other).
func (f *Function) Lt(other any) *Function {
	return lift2("<", f, other)
}

// Le returns the lazy elementwise comparison (f <= other).
func (f *Function) Le(other any) *Function {
	return lift2("<=", f, other)
}

// Gt returns the lazy elementwise comparison (f > other).
func (f *Function) Gt(other any) *Function {
	return lift2(">", f, other)
}

// Ge returns the lazy elementwise comparison (f >= other).
func (f *Function) Ge(other any) *Function {
	return lift2(">=", f, other)
}

// And returns the lazy elementwise conjunction (f & other).
func (f *Function) And(other any) *Function {
	return lift2("&", f, other)
}

// Or returns the lazy elementwise disjunction (f | other).
func (f *Function) Or(other any) *Function {
	return lift2("|", f, other)
}

// Xor returns the lazy elementwise exclusive disjunction (f ^ other).
func (f *Function) Xor(other any) *Function {
	return lift2("^", f, other)
}

// Neg returns the lazy elementwise negation (- f).
func (f *Function) Neg() *Function {
	return lift1("-", f)
}

// Pos returns the lazy elementwise numeric identity (+ f).
func (f *Function) Pos() *Function {
	return lift1("+", f)
}

// Abs returns the lazy elementwise absolute value (abs f).
func (f *Function) Abs() *Function {
	return lift1("abs", f)
}

// ============================================================================
// Numeric Kernel
// ============================================================================

// The kernel evaluates lifted operators over a dynamic value domain:
// float64 and bool scalars, []float64 and []bool vectors. Scalars
// broadcast across vectors; vector pairs must agree in length. Violations
// panic, matching gonum's policy for numeric misuse.

const badLength = "funcalg: length of the slices do not match"

// normalize converts the numeric kinds accepted at call boundaries to
// the canonical float64 forms. Values outside the domain pass through
// unchanged.
func normalize(v any) any {
	switch x := v.(type) {
	case float64, bool, []float64, []bool, []any:
		return v
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case []int:
		out := make([]float64, len(x))
		for i, n := range x {
			out[i] = float64(n)
		}
		return out
	case []float32:
		out := make([]float64, len(x))
		for i, n := range x {
			out[i] = float64(n)
		}
		return out
	}
	return v
}

func toScalar(v any) float64 {
	x, ok := normalize(v).(float64)
	if !ok {
		panic(fmt.Sprintf("funcalg: expected a numeric scalar, got %T", v))
	}
	return x
}

func operandTypeError(sym string, x, y any) string {
	return fmt.Sprintf("funcalg: unsupported operand types for %s: %T and %T", sym, x, y)
}

// numericBinary builds an elementwise binary kernel over the numeric
// domain, broadcasting scalars across vectors.
func numericBinary(sym string, scalar func(a, b float64) float64, vector func(dst, s, t []float64) []float64) func(x, y any) any {
	return func(x, y any) any {
		xv, yv := normalize(x), normalize(y)
		switch a := xv.(type) {
		case float64:
			switch b := yv.(type) {
			case float64:
				return scalar(a, b)
			case []float64:
				dst := make([]float64, len(b))
				for i, bv := range b {
					dst[i] = scalar(a, bv)
				}
				return dst
			}
		case []float64:
			switch b := yv.(type) {
			case float64:
				dst := make([]float64, len(a))
				for i, av := range a {
					dst[i] = scalar(av, b)
				}
				return dst
			case []float64:
				if len(a) != len(b) {
					panic(badLength)
				}
				return vector(make([]float64, len(a)), a, b)
			}
		}
		panic(operandTypeError(sym, xv, yv))
	}
}

// elementwise adapts a scalar op to the slice shape the vector lane
// expects. Lengths are checked before dispatch.
func elementwise(op func(a, b float64) float64) func(dst, s, t []float64) []float64 {
	return func(dst, s, t []float64) []float64 {
		for i, sv := range s {
			dst[i] = op(sv, t[i])
		}
		return dst
	}
}

// compareBinary builds an elementwise comparison kernel over the numeric
// domain, producing bool scalars and vectors.
func compareBinary(sym string, cmp func(a, b float64) bool) func(x, y any) any {
	return func(x, y any) any {
		xv, yv := normalize(x), normalize(y)
		switch a := xv.(type) {
		case float64:
			switch b := yv.(type) {
			case float64:
				return cmp(a, b)
			case []float64:
				dst := make([]bool, len(b))
				for i, bv := range b {
					dst[i] = cmp(a, bv)
				}
				return dst
			}
		case []float64:
			switch b := yv.(type) {
			case float64:
				dst := make([]bool, len(a))
				for i, av := range a {
					dst[i] = cmp(av, b)
				}
				return dst
			case []float64:
				if len(a) != len(b) {
					panic(badLength)
				}
				dst := make([]bool, len(a))
				for i, av := range a {
					dst[i] = cmp(av, b[i])
				}
				return dst
			}
		}
		panic(operandTypeError(sym, xv, yv))
	}
}

// boolBinary builds an elementwise kernel over the boolean domain.
func boolBinary(sym string, op func(a, b bool) bool) func(x, y any) any {
	return func(x, y any) any {
		xv, yv := normalize(x), normalize(y)
		switch a := xv.(type) {
		case bool:
			switch b := yv.(type) {
			case bool:
				return op(a, b)
			case []bool:
				dst := make([]bool, len(b))
				for i, bv := range b {
					dst[i] = op(a, bv)
				}
				return dst
			}
		case []bool:
			switch b := yv.(type) {
			case bool:
				dst := make([]bool, len(a))
				for i, av := range a {
					dst[i] = op(av, b)
				}
				return dst
			case []bool:
				if len(a) != len(b) {
					panic(badLength)
				}
				dst := make([]bool, len(a))
				for i, av := range a {
					dst[i] = op(av, b[i])
				}
				return dst
			}
		}
		panic(operandTypeError(sym, xv, yv))
	}
}

// equality dispatches equality across the numeric and boolean domains.
// Mixed-domain operands are unsupported.
func equality(sym string, negate bool) func(x, y any) any {
	num := compareBinary(sym, func(a, b float64) bool { return (a == b) != negate })
	boo := boolBinary(sym, func(a, b bool) bool { return (a == b) != negate })
	return func(x, y any) any {
		xv, yv := normalize(x), normalize(y)
		if isBoolean(xv) && isBoolean(yv) {
			return boo(xv, yv)
		}
		return num(xv, yv)
	}
}

func isBoolean(v any) bool {
	switch v.(type) {
	case bool, []bool:
		return true
	}
	return false
}

// numericUnary builds an elementwise unary kernel over the numeric
// domain.
func numericUnary(sym string, op func(a float64) float64) func(x any) any {
	return func(x any) any {
		switch a := normalize(x).(type) {
		case float64:
			return op(a)
		case []float64:
			dst := make([]float64, len(a))
			for i, av := range a {
				dst[i] = op(av)
			}
			return dst
		}
		panic(fmt.Sprintf("funcalg: unsupported operand type for %s: %T", sym, x))
	}
}

// floorDiv is floored-quotient division: the result rounds toward
// negative infinity.
func floorDiv(a, b float64) float64 {
	return math.Floor(a / b)
}

// flooredMod is the floored-division remainder: the result takes the
// divisor's sign.
func flooredMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

var (
	kernelAdd      = numericBinary("+", func(a, b float64) float64 { return a + b }, floats.AddTo)
	kernelSub      = numericBinary("-", func(a, b float64) float64 { return a - b }, floats.SubTo)
	kernelMul      = numericBinary("*", func(a, b float64) float64 { return a * b }, floats.MulTo)
	kernelDiv      = numericBinary("/", func(a, b float64) float64 { return a / b }, floats.DivTo)
	kernelFloorDiv = numericBinary("//", floorDiv, elementwise(floorDiv))
	kernelMod      = numericBinary("%", flooredMod, elementwise(flooredMod))
	kernelPow      = numericBinary("**", math.Pow, elementwise(math.Pow))

	kernelEq = equality("==", false)
	kernelNe = equality("!=", true)
	kernelLt = compareBinary("<", func(a, b float64) bool { return a < b })
	kernelLe = compareBinary("<=", func(a, b float64) bool { return a <= b })
	kernelGt = compareBinary(">", func(a, b float64) bool { return a > b })
	kernelGe = compareBinary(">=", func(a, b float64) bool { return a >= b })

	kernelAnd = boolBinary("&", func(a, b bool) bool { return a && b })
	kernelOr  = boolBinary("|", func(a, b bool) bool { return a || b })
	kernelXor = boolBinary("^", func(a, b bool) bool { return a != b })

	kernelAbs = numericUnary("abs", math.Abs)
	kernelNeg = numericUnary("-", func(a float64) float64 { return -a })
	kernelPos = numericUnary("+", func(a float64) float64 { return a })
)

// Elementwise adapts a scalar function to the full value domain: scalar
// inputs map directly and vector inputs map element by element. It is
// the usual way to wrap math package functions:
//
//	cos := funcalg.Must(funcalg.New(funcalg.Elementwise(math.Cos), funcalg.WithName("cos")))
func Elementwise(op func(float64) float64) Target {
	apply := numericUnary("elementwise op", op)
	return func(args ...any) any {
		arity(1, len(args))
		return apply(args[0])
	}
}

// fillLike reproduces a constant in the shape of the input: vector
// inputs are filled in their own kind when the constant coerces, falling
// back to a mixed vector, and scalar inputs return the constant
// unchanged.
func fillLike(like, v any) any {
	switch l := normalize(like).(type) {
	case []float64:
		if c, ok := toFloat(normalize(v)); ok {
			dst := make([]float64, len(l))
			for i := range dst {
				dst[i] = c
			}
			return dst
		}
		return fillAny(len(l), v)
	case []bool:
		if c, ok := toBool(normalize(v)); ok {
			dst := make([]bool, len(l))
			for i := range dst {
				dst[i] = c
			}
			return dst
		}
		return fillAny(len(l), v)
	case []any:
		return fillAny(len(l), v)
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case float64:
		return x != 0, true
	}
	return false, false
}

func fillAny(n int, v any) []any {
	dst := make([]any, n)
	for i := range dst {
		dst[i] = v
	}
	return dst
}
