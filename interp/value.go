package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value. The set is closed: a tagged
// union over a fixed set of variants, no open extension point.
type ValueKind int

const (
	VEmpty ValueKind = iota
	VBool
	VInt
	VFloat
	VString
	VArray
	VFunc
)

// FuncDescriptor identifies a callable value: either a system (built-in)
// function or a user-defined one, addressed by registration id rather than
// embedding the body.
type FuncDescriptor struct {
	Name   string
	RegID  int
	IsUser bool
}

// Value is the dynamic, tagged-union value every NakoLang expression
// evaluates to.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Array []Value
	Func  *FuncDescriptor
}

func Empty() Value { return Value{Kind: VEmpty} }
func BoolValue(b bool) Value { return Value{Kind: VBool, Bool: b} }
func IntValue(i int64) Value { return Value{Kind: VInt, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: VFloat, Float: f} }
func StringValue(s string) Value { return Value{Kind: VString, Str: s} }
func ArrayValue(a []Value) Value { return Value{Kind: VArray, Array: a} }
func FuncValue(f *FuncDescriptor) Value { return Value{Kind: VFunc, Func: f} }

// AsBool coerces via the standard logical-op truthiness rule.
func (v Value) AsBool() bool {
	switch v.Kind {
	case VEmpty:
		return false
	case VBool:
		return v.Bool
	case VInt:
		return v.Int != 0
	case VFloat:
		return v.Float != 0
	case VString:
		return v.Str != "" && v.Str != "0"
	case VArray:
		return len(v.Array) > 0
	case VFunc:
		return true
	default:
		return false
	}
}

// AsInt coerces via integer coercion (used by ==/≠).
func (v Value) AsInt() int64 {
	switch v.Kind {
	case VEmpty:
		return 0
	case VBool:
		if v.Bool {
			return 1
		}
		return 0
	case VInt:
		return v.Int
	case VFloat:
		return int64(v.Float)
	case VString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
			if ferr == nil {
				return int64(f)
			}
			return 0
		}
		return i
	default:
		return 0
	}
}

// AsFloat coerces via float coercion (used by inequality comparisons).
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case VEmpty:
		return 0
	case VBool:
		if v.Bool {
			return 1
		}
		return 0
	case VInt:
		return float64(v.Int)
	case VFloat:
		return v.Float
	case VString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// AsString stringifies any value; used by the & (string-concat) operator,
// which "always stringifies both sides".
func (v Value) AsString() string {
	switch v.Kind {
	case VEmpty:
		return ""
	case VBool:
		if v.Bool {
			return "真"
		}
		return "偽"
	case VInt:
		return strconv.FormatInt(v.Int, 10)
	case VFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case VString:
		return v.Str
	case VArray:
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = e.AsString()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case VFunc:
		if v.Func != nil {
			return v.Func.Name
		}
		return ""
	default:
		return ""
	}
}

func isNumeric(v Value) bool { return v.Kind == VInt || v.Kind == VFloat }

// Arithmetic, comparison, logical and string operations are total: they
// never raise, and fall back to Empty() on incompatible pairs.

// Add implements the + operator. Int+Int stays Int; any Float operand
// widens to Float; everything else yields Empty.
func Add(a, b Value) Value {
	switch {
	case a.Kind == VInt && b.Kind == VInt:
		return IntValue(a.Int + b.Int)
	case isNumeric(a) && isNumeric(b):
		return FloatValue(a.AsFloat() + b.AsFloat())
	default:
		return Empty()
	}
}

func Sub(a, b Value) Value {
	switch {
	case a.Kind == VInt && b.Kind == VInt:
		return IntValue(a.Int - b.Int)
	case isNumeric(a) && isNumeric(b):
		return FloatValue(a.AsFloat() - b.AsFloat())
	default:
		return Empty()
	}
}

func Mul(a, b Value) Value {
	switch {
	case a.Kind == VInt && b.Kind == VInt:
		return IntValue(a.Int * b.Int)
	case isNumeric(a) && isNumeric(b):
		return FloatValue(a.AsFloat() * b.AsFloat())
	default:
		return Empty()
	}
}

// Div always yields float.
func Div(a, b Value) Value {
	if !isNumeric(a) || !isNumeric(b) {
		return Empty()
	}
	denom := b.AsFloat()
	if denom == 0 {
		return Empty()
	}
	return FloatValue(a.AsFloat() / denom)
}

func Mod(a, b Value) Value {
	switch {
	case a.Kind == VInt && b.Kind == VInt:
		if b.Int == 0 {
			return Empty()
		}
		return IntValue(a.Int % b.Int)
	case isNumeric(a) && isNumeric(b):
		af, bf := a.AsFloat(), b.AsFloat()
		if bf == 0 {
			return Empty()
		}
		return FloatValue(float64(int64(af) % int64(bf)))
	default:
		return Empty()
	}
}

// Pow: integer ^ on ints yields int; mixed widens to float.
func Pow(a, b Value) Value {
	switch {
	case a.Kind == VInt && b.Kind == VInt:
		result := int64(1)
		base := a.Int
		exp := b.Int
		if exp < 0 {
			return FloatValue(powFloat(a.AsFloat(), b.AsFloat()))
		}
		for i := int64(0); i < exp; i++ {
			result *= base
		}
		return IntValue(result)
	case isNumeric(a) && isNumeric(b):
		return FloatValue(powFloat(a.AsFloat(), b.AsFloat()))
	default:
		return Empty()
	}
}

func powFloat(base, exp float64) float64 {
	result := 1.0
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for i := 0.0; i < exp; i++ {
		result *= base
	}
	if neg {
		if result == 0 {
			return 0
		}
		return 1 / result
	}
	return result
}

// Concat implements & (plus-str, representative rune 結): always stringify
// both sides.
func Concat(a, b Value) Value {
	return StringValue(a.AsString() + b.AsString())
}

// Eq/NotEq compare via integer coercion.
func Eq(a, b Value) Value {
	if a.Kind == VString || b.Kind == VString {
		if a.Kind == VString && b.Kind == VString {
			return BoolValue(a.Str == b.Str)
		}
	}
	return BoolValue(a.AsInt() == b.AsInt())
}

func NotEq(a, b Value) Value {
	r := Eq(a, b)
	return BoolValue(!r.Bool)
}

// Gt/GtEq/Lt/LtEq compare via float coercion.
func Gt(a, b Value) Value   { return BoolValue(a.AsFloat() > b.AsFloat()) }
func GtEq(a, b Value) Value { return BoolValue(a.AsFloat() >= b.AsFloat()) }
func Lt(a, b Value) Value   { return BoolValue(a.AsFloat() < b.AsFloat()) }
func LtEq(a, b Value) Value { return BoolValue(a.AsFloat() <= b.AsFloat()) }

// And/Or compare via bool coercion.
func And(a, b Value) Value { return BoolValue(a.AsBool() && b.AsBool()) }
func Or(a, b Value) Value  { return BoolValue(a.AsBool() || b.AsBool()) }

// ApplyOperator dispatches on the operator's representative flag rune. An
// unrecognized flag is a systemic runtime error signalled by
// returning ok=false; the evaluator turns that into a Diagnostic.
func ApplyOperator(flag rune, a, b Value) (Value, bool) {
	switch flag {
	case '+':
		return Add(a, b), true
	case '-':
		return Sub(a, b), true
	case '*':
		return Mul(a, b), true
	case '/':
		return Div(a, b), true
	case '%':
		return Mod(a, b), true
	case '^':
		return Pow(a, b), true
	case '結':
		return Concat(a, b), true
	case '=':
		return Eq(a, b), true
	case '≠':
		return NotEq(a, b), true
	case '>':
		return Gt(a, b), true
	case '≧':
		return GtEq(a, b), true
	case '<':
		return Lt(a, b), true
	case '≦':
		return LtEq(a, b), true
	case '&':
		return And(a, b), true
	case '|':
		return Or(a, b), true
	default:
		return Empty(), false
	}
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.kindLabel(), v.AsString())
}

func (v Value) kindLabel() string {
	switch v.Kind {
	case VEmpty:
		return "empty"
	case VBool:
		return "bool"
	case VInt:
		return "int"
	case VFloat:
		return "number"
	case VString:
		return "string"
	case VArray:
		return "array"
	case VFunc:
		return "function"
	default:
		return "?"
	}
}
