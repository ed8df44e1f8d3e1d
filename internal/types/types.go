// Package types implements the structural type algebra and assignability
// engine for the surface language: keyword primitives, literal types,
// interfaces, classes, tuples, arrays, unions, intersections, enums, type
// parameters with constraints, function types, and the any/unknown top
// pair.
//
// Types arriving here are assumed already elaborated: name references
// resolved, aliases expanded, unions/intersections flattened. This package
// never parses or binds anything; it only decides assignability between
// already-built Type values.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the interface for every case of the type algebra.
type Type interface {
	String() string
	Kind() Kind
}

// Kind is the top-level discriminator of a Type. Equality compares it
// before comparing case contents; the assignability engine's phases
// dispatch with Go type switches instead.
type Kind int

const (
	KindKeyword Kind = iota
	KindLiteral
	KindArray
	KindTuple
	KindUnion
	KindIntersection
	KindTypeLit
	KindInterface
	KindClass
	KindClassInstance
	KindFunction
	KindConstructor
	KindParam
	KindEnum
	KindEnumVariant
	KindThis
	KindPredicate
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "Keyword"
	case KindLiteral:
		return "Literal"
	case KindArray:
		return "Array"
	case KindTuple:
		return "Tuple"
	case KindUnion:
		return "Union"
	case KindIntersection:
		return "Intersection"
	case KindTypeLit:
		return "TypeLit"
	case KindInterface:
		return "Interface"
	case KindClass:
		return "Class"
	case KindClassInstance:
		return "ClassInstance"
	case KindFunction:
		return "Function"
	case KindConstructor:
		return "Constructor"
	case KindParam:
		return "Param"
	case KindEnum:
		return "Enum"
	case KindEnumVariant:
		return "EnumVariant"
	case KindThis:
		return "This"
	case KindPredicate:
		return "Predicate"
	case KindRef:
		return "Ref"
	default:
		return "?"
	}
}

// SourceLoc identifies where an assignability query originates, carried by
// errors for diagnostics only. It never affects equality or dispatch.
type SourceLoc struct {
	File string
	Line int
	Col  int
}

func (l SourceLoc) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// KeywordKind enumerates the built-in keyword primitives.
type KeywordKind int

const (
	KwAny KeywordKind = iota
	KwUnknown
	KwString
	KwNumber
	KwBoolean
	KwObject
	KwVoid
	KwUndefined
	KwNull
	KwNever
	KwSymbol
	KwBigint
)

var keywordNames = map[KeywordKind]string{
	KwAny:       "any",
	KwUnknown:   "unknown",
	KwString:    "string",
	KwNumber:    "number",
	KwBoolean:   "boolean",
	KwObject:    "object",
	KwVoid:      "void",
	KwUndefined: "undefined",
	KwNull:      "null",
	KwNever:     "never",
	KwSymbol:    "symbol",
	KwBigint:    "bigint",
}

// Keyword is one of any, unknown, string, number, boolean, object, void,
// undefined, null, never, symbol, bigint.
type Keyword struct {
	Kw KeywordKind
}

func (k Keyword) Kind() Kind   { return KindKeyword }
func (k Keyword) String() string {
	if name, ok := keywordNames[k.Kw]; ok {
		return name
	}
	return "?keyword"
}

// LitKind enumerates the literal value kinds.
type LitKind int

const (
	LitString LitKind = iota
	LitNumber
	LitBoolean
)

// Literal is a value-level literal type: a string, number, or boolean
// literal. Values are stored decoded (no escape-flag distinction; see
// DESIGN.md for why the span-insensitive-equality duplication this
// algebra could otherwise be prone to does not arise here).
type Literal struct {
	LitKind LitKind
	Str     string
	Num     float64
	Bool    bool
}

func (l Literal) Kind() Kind { return KindLiteral }
func (l Literal) String() string {
	switch l.LitKind {
	case LitString:
		return fmt.Sprintf("%q", l.Str)
	case LitNumber:
		return formatNumber(l.Num)
	case LitBoolean:
		return fmt.Sprintf("%t", l.Bool)
	default:
		return "?literal"
	}
}

func formatNumber(n float64) string {
	s := fmt.Sprintf("%g", n)
	return s
}

// Array is a homogeneous sequence type.
type Array struct {
	Elem Type
}

func (a Array) Kind() Kind     { return KindArray }
func (a Array) String() string { return fmt.Sprintf("%s[]", a.Elem.String()) }

// Tuple is a fixed-arity heterogeneous sequence type.
type Tuple struct {
	Elems []Type
}

func (t Tuple) Kind() Kind { return KindTuple }
func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Union is a disjunction of at least two alternatives.
type Union struct {
	Alts []Type
}

func (u Union) Kind() Kind { return KindUnion }
func (u Union) String() string {
	parts := make([]string, len(u.Alts))
	for i, a := range u.Alts {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}

// Intersection is a conjunction of at least two parts.
type Intersection struct {
	Parts []Type
}

func (i Intersection) Kind() Kind { return KindIntersection }
func (i Intersection) String() string {
	parts := make([]string, len(i.Parts))
	for idx, p := range i.Parts {
		parts[idx] = p.String()
	}
	return strings.Join(parts, " & ")
}

// ElementKind enumerates the kinds of TypeElement.
type ElementKind int

const (
	ElemProperty ElementKind = iota
	ElemMethod
	ElemCall
	ElemConstructor
	ElemIndex
)

// KeyKind enumerates the shapes a member key can take.
type KeyKind int

const (
	KeyIdent KeyKind = iota
	KeyString
	KeyNumber
	KeyComputed
)

// Key identifies a member of an object-like type. Property and Method
// elements always carry a Key; Call, Constructor, and Index elements never
// do — they are matched structurally instead.
type Key struct {
	KeyKind KeyKind
	Ident   string
	Str     string
	Num     string // canonical decimal text, for numeric literal keys
}

func (k Key) String() string {
	switch k.KeyKind {
	case KeyIdent:
		return k.Ident
	case KeyString:
		return fmt.Sprintf("%q", k.Str)
	case KeyNumber:
		return k.Num
	default:
		return "[computed]"
	}
}

// text returns the comparable text of a key, and whether the key supports
// text-based equality at all (computed keys never do).
func (k Key) text() (string, bool) {
	switch k.KeyKind {
	case KeyIdent:
		return k.Ident, true
	case KeyString:
		return k.Str, true
	case KeyNumber:
		return k.Num, true
	default:
		return "", false
	}
}

// keyEqual compares two member keys: identifier, string-literal, and
// numeric-literal keys are all compared by their decoded text; computed
// keys are never equal to anything, including each other.
func keyEqual(a, b Key) bool {
	ta, oka := a.text()
	tb, okb := b.text()
	if !oka || !okb {
		return false
	}
	return ta == tb
}

// Signature is a simplified call/construct signature. Function
// assignability compares only return types (a deliberate
// parameter-count/type laxity); whole signatures are compared only by the
// structural equality helpers, e.g. for unkeyed Call/Constructor elements.
type Signature struct {
	TypeParams []TypeParamDecl
	Params     []Type
	Ret        Type
}

func (s Signature) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	ret := "void"
	if s.Ret != nil {
		ret = s.Ret.String()
	}
	return "(" + strings.Join(params, ", ") + ") => " + ret
}

// TypeElement is a member of a TypeLit or Interface body.
type TypeElement struct {
	ElemKind ElementKind

	Key      Key  // set for Property/Method only
	Optional bool // set for Property only

	PropType Type // set for Property only; nil means "untyped" (treated as any)

	Signatures []Signature // set for Method/Call/Constructor

	IndexKeyType   Type // set for Index only
	IndexValueType Type // set for Index only
}

func (e TypeElement) String() string {
	switch e.ElemKind {
	case ElemProperty:
		opt := ""
		if e.Optional {
			opt = "?"
		}
		t := "any"
		if e.PropType != nil {
			t = e.PropType.String()
		}
		return fmt.Sprintf("%s%s: %s", e.Key.String(), opt, t)
	case ElemMethod:
		return fmt.Sprintf("%s%s", e.Key.String(), signaturesString(e.Signatures))
	case ElemCall:
		return "call" + signaturesString(e.Signatures)
	case ElemConstructor:
		return "new" + signaturesString(e.Signatures)
	case ElemIndex:
		return fmt.Sprintf("[key: %s]: %s", e.IndexKeyType.String(), e.IndexValueType.String())
	default:
		return "?member"
	}
}

func signaturesString(sigs []Signature) string {
	parts := make([]string, len(sigs))
	for i, s := range sigs {
		parts[i] = s.String()
	}
	return strings.Join(parts, " & ")
}

// TypeLit is an anonymous structural object type.
type TypeLit struct {
	Members []TypeElement
}

func (t TypeLit) Kind() Kind { return KindTypeLit }
func (t TypeLit) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// Interface is a named structural object type, possibly extending others.
type Interface struct {
	Name    string
	Members []TypeElement
	Extends []Type
}

func (i Interface) Kind() Kind     { return KindInterface }
func (i Interface) String() string { return i.Name }

// ClassMemberKind enumerates the kinds of ClassMember.
type ClassMemberKind int

const (
	CMProperty ClassMemberKind = iota
	CMMethod
	CMConstructor
	CMGetter
	CMSetter
)

// ClassMember is a member of a class body.
type ClassMember struct {
	Kind       ClassMemberKind
	Key        string // empty for Constructor
	PropType   Type   // set for Property/Getter/Setter
	Signatures []Signature
	Static     bool
}

// Class is the class constructor type (not an instance).
type Class struct {
	Name    string
	Members []ClassMember
}

func (c Class) Kind() Kind     { return KindClass }
func (c Class) String() string { return "typeof " + c.Name }

// ClassInstance is an instance of a class, possibly with type arguments.
type ClassInstance struct {
	Class    Class
	TypeArgs []Type
}

func (c ClassInstance) Kind() Kind { return KindClassInstance }
func (c ClassInstance) String() string {
	if len(c.TypeArgs) == 0 {
		return c.Class.Name
	}
	parts := make([]string, len(c.TypeArgs))
	for i, a := range c.TypeArgs {
		parts[i] = a.String()
	}
	return c.Class.Name + "<" + strings.Join(parts, ", ") + ">"
}

// TypeParamDecl is a type parameter declaration attached to a Function or
// Constructor (distinct from Param, which is a *reference* to a type
// parameter used as a type).
type TypeParamDecl struct {
	Name       string
	Constraint Type
}

// Function is a callable type.
type Function struct {
	TypeParams []TypeParamDecl
	Params     []Type
	Ret        Type
}

func (f Function) Kind() Kind { return KindFunction }
func (f Function) String() string {
	return Signature{TypeParams: f.TypeParams, Params: f.Params, Ret: f.Ret}.String()
}

// Constructor is a newable type.
type Constructor struct {
	TypeParams []TypeParamDecl
	Params     []Type
	Ret        Type
}

func (c Constructor) Kind() Kind { return KindConstructor }
func (c Constructor) String() string {
	return "new " + Signature{TypeParams: c.TypeParams, Params: c.Params, Ret: c.Ret}.String()
}

// Param is a reference to a type parameter, e.g. T in `function f<T>(x: T)`.
type Param struct {
	Name       string
	Constraint Type
	Default    Type
}

func (p Param) Kind() Kind     { return KindParam }
func (p Param) String() string { return p.Name }

// EnumMember is one member of an enum declaration, with an optional
// initializer literal used to classify the enum as numeric or string.
type EnumMember struct {
	Name string
	Init *Literal
}

// Enum is an enum declaration's type.
type Enum struct {
	ID      string
	Members []EnumMember
}

func (e Enum) Kind() Kind     { return KindEnum }
func (e Enum) String() string { return e.ID }

// EnumVariant is a reference to one specific member of an enum.
type EnumVariant struct {
	EnumName   string
	MemberName string
}

func (v EnumVariant) Kind() Kind     { return KindEnumVariant }
func (v EnumVariant) String() string { return v.EnumName + "." + v.MemberName }

// This is the `this` type.
type This struct{}

func (This) Kind() Kind     { return KindThis }
func (This) String() string { return "this" }

// Predicate is a type predicate `x is T`.
type Predicate struct {
	Param  string
	Tested Type
}

func (p Predicate) Kind() Kind     { return KindPredicate }
func (p Predicate) String() string { return p.Param + " is " + p.Tested.String() }

// Ref is an unresolved type reference. Encountering one at this layer is a
// bug in the upstream elaborator: the engine must signal an internal error
// rather than guess.
type Ref struct {
	Name string
	Args []Type
}

func (r Ref) Kind() Kind { return KindRef }
func (r Ref) String() string {
	if len(r.Args) == 0 {
		return r.Name
	}
	parts := make([]string, len(r.Args))
	for i, a := range r.Args {
		parts[i] = a.String()
	}
	return r.Name + "<" + strings.Join(parts, ", ") + ">"
}

// sortedCopy returns a copy of ts sorted by String(). Nothing in this
// package calls it: Union/Intersection equality (equalTypeSet) matches
// members pairwise without sorting.
func sortedCopy(ts []Type) []Type {
	out := make([]Type, len(ts))
	copy(out, ts)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
