package types

import "testing"

func TestEqualUnionIsSetLike(t *testing.T) {
	a := Union{Alts: []Type{kw(KwString), kw(KwNumber)}}
	b := Union{Alts: []Type{kw(KwNumber), kw(KwString)}}
	if !Equal(a, b) {
		t.Fatalf("expected order-independent union equality")
	}
}

func TestEqualIgnoresSourceLocByConstruction(t *testing.T) {
	// This algebra never embeds a SourceLoc inside a Type value, so two
	// structurally identical types built from different call sites are
	// always equal; there is no span field to strip.
	a := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	b := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	if !Equal(a, b) {
		t.Fatalf("expected structural equality")
	}
}

func TestEqualIgnoringNamesIgnoresInterfaceAndParamNames(t *testing.T) {
	a := Interface{Name: "Foo", Members: []TypeElement{prop("x", kw(KwNumber))}}
	b := Interface{Name: "Bar", Members: []TypeElement{prop("x", kw(KwNumber))}}
	if Equal(a, b) {
		t.Fatalf("plain Equal must respect interface names")
	}
	if !EqualIgnoringNames(a, b) {
		t.Fatalf("EqualIgnoringNames must ignore interface names")
	}

	p1 := Param{Name: "T", Constraint: kw(KwString)}
	p2 := Param{Name: "U", Constraint: kw(KwString)}
	if Equal(p1, p2) {
		t.Fatalf("plain Equal must respect param names")
	}
	if !EqualIgnoringNames(p1, p2) {
		t.Fatalf("EqualIgnoringNames must ignore param names")
	}
}

func TestKeyEqualAcrossIdentAndStringForms(t *testing.T) {
	a := Key{KeyKind: KeyIdent, Ident: "x"}
	b := Key{KeyKind: KeyString, Str: "x"}
	if !keyEqual(a, b) {
		t.Fatalf("expected identifier/string key value-equality")
	}
	computed1 := Key{KeyKind: KeyComputed}
	computed2 := Key{KeyKind: KeyComputed}
	if keyEqual(computed1, computed2) {
		t.Fatalf("computed keys must never be equal, even to themselves")
	}
}

func TestGeneralizeLitWidensOnlyLiterals(t *testing.T) {
	if GeneralizeLit(strLit("x")) != (Keyword{Kw: KwString}) {
		t.Fatalf("expected string literal to widen to string keyword")
	}
	arr := Array{Elem: kw(KwNumber)}
	if GeneralizeLit(arr) != Type(arr) {
		t.Fatalf("expected non-literal types to pass through unchanged")
	}
}

func TestNormalizeUnwrapsSingletonUnion(t *testing.T) {
	u := Union{Alts: []Type{kw(KwString)}}
	got := Normalize(u)
	if _, ok := got.(Keyword); !ok {
		t.Fatalf("expected singleton union to unwrap to its one alternative, got %T", got)
	}
}
