package types

import (
	"errors"
	"testing"

	"github.com/shapelang/shapec/internal/config"
)

func loc() SourceLoc { return SourceLoc{File: "test.shape", Line: 1, Col: 1} }

func kw(k KeywordKind) Keyword { return Keyword{Kw: k} }

func strLit(s string) Literal { return Literal{LitKind: LitString, Str: s} }
func numLit(n float64) Literal { return Literal{LitKind: LitNumber, Num: n} }
func boolLit(b bool) Literal    { return Literal{LitKind: LitBoolean, Bool: b} }

func prop(name string, t Type) TypeElement {
	return TypeElement{ElemKind: ElemProperty, Key: Key{KeyKind: KeyIdent, Ident: name}, PropType: t}
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
}

func mustFail(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected failure, got success")
	}
}

// --- universal properties ---

func TestReflexivity(t *testing.T) {
	cases := []Type{
		kw(KwString), kw(KwNumber), kw(KwBoolean), kw(KwAny), kw(KwUnknown),
		strLit("a"), numLit(1), boolLit(true),
		Array{Elem: kw(KwNumber)},
		TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}},
	}
	for _, c := range cases {
		if err := Assign(c, c, loc(), config.Default()); err != nil {
			t.Errorf("Assign(%s, %s) expected success (reflexivity), got %v", c, c, err)
		}
	}
}

func TestAnyIsTopAndBottom(t *testing.T) {
	any := kw(KwAny)
	mustOK(t, Assign(any, kw(KwString), loc(), config.Default()))
	mustOK(t, Assign(kw(KwString), any, loc(), config.Default()))
	mustOK(t, Assign(any, TypeLit{}, loc(), config.Default()))
}

func TestUnknownAcceptsEverythingButOffersNothing(t *testing.T) {
	unk := kw(KwUnknown)
	mustOK(t, Assign(unk, kw(KwString), loc(), config.Default()))
	mustOK(t, Assign(unk, TypeLit{}, loc(), config.Default()))
	mustFail(t, Assign(kw(KwString), unk, loc(), config.Default()))
}

func TestUnknownAcceptsAnyAndUndefined(t *testing.T) {
	unk := kw(KwUnknown)
	mustOK(t, Assign(unk, kw(KwAny), loc(), config.Default()))
	mustOK(t, Assign(unk, kw(KwUndefined), loc(), config.Default()))
}

func TestLiteralWidensToPrimitive(t *testing.T) {
	mustOK(t, Assign(kw(KwString), strLit("hi"), loc(), config.Default()))
	mustOK(t, Assign(kw(KwNumber), numLit(3), loc(), config.Default()))
	mustOK(t, Assign(kw(KwBoolean), boolLit(false), loc(), config.Default()))
	mustFail(t, Assign(strLit("hi"), kw(KwString), loc(), config.Default()))
}

func TestStrictNullChecks(t *testing.T) {
	cfgLoose := config.Default()
	cfgStrict := config.Config{StrictNullChecks: true}

	mustOK(t, Assign(kw(KwString), kw(KwNull), loc(), cfgLoose))
	mustOK(t, Assign(kw(KwString), kw(KwUndefined), loc(), cfgLoose))

	mustFail(t, Assign(kw(KwString), kw(KwNull), loc(), cfgStrict))
	mustOK(t, Assign(kw(KwAny), kw(KwNull), loc(), cfgStrict))
}

func TestUnionOnRightRequiresEveryAlternative(t *testing.T) {
	u := Union{Alts: []Type{kw(KwString), kw(KwNumber)}}
	mustFail(t, Assign(kw(KwString), u, loc(), config.Default()))
	mustOK(t, Assign(Union{Alts: []Type{kw(KwString), kw(KwNumber)}}, u, loc(), config.Default()))
}

func TestUnionOnLeftAcceptsAnyArm(t *testing.T) {
	u := Union{Alts: []Type{kw(KwString), kw(KwNumber)}}
	mustOK(t, Assign(u, kw(KwString), loc(), config.Default()))
	mustOK(t, Assign(u, kw(KwNumber), loc(), config.Default()))
	mustFail(t, Assign(u, kw(KwBoolean), loc(), config.Default()))
}

func TestIntersectionRequiresEveryPart(t *testing.T) {
	i := Intersection{Parts: []Type{
		TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}},
		TypeLit{Members: []TypeElement{prop("y", kw(KwString))}},
	}}
	both := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber)), prop("y", kw(KwString))}}
	onlyX := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	mustOK(t, Assign(i, both, loc(), config.Default()))
	mustFail(t, Assign(i, onlyX, loc(), config.Default()))
}

func TestArrayElementwise(t *testing.T) {
	mustOK(t, Assign(Array{Elem: kw(KwNumber)}, Array{Elem: kw(KwNumber)}, loc(), config.Default()))
	mustFail(t, Assign(Array{Elem: kw(KwNumber)}, Array{Elem: kw(KwString)}, loc(), config.Default()))
}

func TestTupleLengthAndUndefinedEscape(t *testing.T) {
	t12 := Tuple{Elems: []Type{kw(KwNumber), kw(KwString)}}
	t123 := Tuple{Elems: []Type{kw(KwNumber), kw(KwString), kw(KwBoolean)}}
	mustFail(t, Assign(t12, t123, loc(), config.Default()))
	mustOK(t, Assign(t123, t12, loc(), config.Default()))

	withUndef := Tuple{Elems: []Type{kw(KwUndefined), kw(KwString)}}
	mustOK(t, Assign(t12, withUndef, loc(), config.Default()))
}

func TestPredicateAcceptsBooleanOnly(t *testing.T) {
	p := Predicate{Param: "x", Tested: kw(KwString)}
	mustOK(t, Assign(p, kw(KwBoolean), loc(), config.Default()))
	mustOK(t, Assign(p, boolLit(true), loc(), config.Default()))
	mustFail(t, Assign(p, kw(KwString), loc(), config.Default()))
}

func TestEnumVariantNominal(t *testing.T) {
	red := EnumVariant{EnumName: "Color", MemberName: "Red"}
	red2 := EnumVariant{EnumName: "Color", MemberName: "Red"}
	blue := EnumVariant{EnumName: "Color", MemberName: "Blue"}
	mustOK(t, Assign(red, red2, loc(), config.Default()))
	mustFail(t, Assign(red, blue, loc(), config.Default()))
}

func TestEnumAcceptsItsOwnVariants(t *testing.T) {
	colorEnum := Enum{ID: "Color", Members: []EnumMember{{Name: "Red"}, {Name: "Blue"}}}
	red := EnumVariant{EnumName: "Color", MemberName: "Red"}
	otherVariant := EnumVariant{EnumName: "Other", MemberName: "Red"}
	mustOK(t, Assign(colorEnum, red, loc(), config.Default()))
	mustFail(t, Assign(colorEnum, otherVariant, loc(), config.Default()))
}

func TestThisNeverAssignable(t *testing.T) {
	err := Assign(This{}, kw(KwString), loc(), config.Default())
	mustFail(t, err)
	var af *AssignFailed
	if !errors.As(err, &af) {
		t.Fatalf("expected *AssignFailed root, got %T", err)
	}
	var cannot *CannotAssignToThis
	found := false
	for _, c := range af.Causes {
		if errors.As(c, &cannot) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CannotAssignToThis cause, got %v", af.Causes)
	}
}

func TestWrapperPrimitiveAsymmetry(t *testing.T) {
	boxedString := Interface{Name: "String"}
	mustFail(t, Assign(kw(KwString), boxedString, loc(), config.Default()))
	mustOK(t, Assign(boxedString, kw(KwString), loc(), config.Default()))
	mustOK(t, Assign(boxedString, strLit("hi"), loc(), config.Default()))
}

func TestStructuralMemberAssignmentMissingField(t *testing.T) {
	l := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber)), prop("y", kw(KwString))}}
	r := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	err := Assign(l, r, loc(), config.Default())
	mustFail(t, err)
	var af *AssignFailed
	if !errors.As(err, &af) {
		t.Fatalf("expected *AssignFailed root, got %T", err)
	}
	var inner *Errors
	found := false
	for _, c := range af.Causes {
		if errs, ok := c.(*Errors); ok {
			inner = errs
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Errors cause, got %v", af.Causes)
	}
	hasMissing := false
	for _, e := range inner.Errs {
		if _, ok := e.(*MissingFields); ok {
			hasMissing = true
		}
	}
	if !hasMissing {
		t.Fatalf("expected a MissingFields entry, got %v", inner.Errs)
	}
}

func TestClassRequiresConstructor(t *testing.T) {
	l := TypeLit{Members: []TypeElement{{ElemKind: ElemConstructor, Signatures: []Signature{{Ret: kw(KwAny)}}}}}
	withCtor := Class{Name: "Widget", Members: []ClassMember{{Kind: CMConstructor}}}
	withoutCtor := Class{Name: "Gadget"}
	mustOK(t, Assign(l, withCtor, loc(), config.Default()))
	err := Assign(l, withoutCtor, loc(), config.Default())
	mustFail(t, err)
	var af *AssignFailed
	if !errors.As(err, &af) {
		t.Fatalf("expected *AssignFailed root, got %T", err)
	}
	found := false
	for _, c := range af.Causes {
		if _, ok := c.(*ConstructorRequired); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ConstructorRequired cause, got %v", af.Causes)
	}
}

func TestClassOnlyChecksConstructorMembers(t *testing.T) {
	widget := Class{Name: "Widget", Members: []ClassMember{{Kind: CMProperty, Key: "x", PropType: kw(KwNumber)}}}

	propAgainstClass := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	err := Assign(propAgainstClass, widget, loc(), config.Default())
	mustFail(t, err)
	var af *AssignFailed
	if !errors.As(err, &af) {
		t.Fatalf("expected *AssignFailed root, got %T", err)
	}
	found := false
	for _, c := range af.Causes {
		if _, ok := c.(*Unimplemented); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Unimplemented for a Property member against a bare Class, got %v", af.Causes)
	}
}

func TestClassInstanceOnlyChecksPropertyMembers(t *testing.T) {
	widget := Class{Name: "Widget", Members: []ClassMember{{Kind: CMConstructor}}}
	instance := ClassInstance{Class: widget}

	ctorAgainstInstance := TypeLit{Members: []TypeElement{{ElemKind: ElemConstructor, Signatures: []Signature{{Ret: kw(KwAny)}}}}}
	err := Assign(ctorAgainstInstance, instance, loc(), config.Default())
	mustFail(t, err)
	var af *AssignFailed
	if !errors.As(err, &af) {
		t.Fatalf("expected *AssignFailed root, got %T", err)
	}
	found := false
	for _, c := range af.Causes {
		if _, ok := c.(*Unimplemented); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Unimplemented for a Constructor member against a ClassInstance, got %v", af.Causes)
	}
}

func TestFunctionReturnCovarianceOnly(t *testing.T) {
	wide := Function{Params: []Type{kw(KwAny)}, Ret: kw(KwString)}
	narrowParams := Function{Params: []Type{kw(KwString), kw(KwNumber)}, Ret: kw(KwString)}
	mustOK(t, Assign(wide, narrowParams, loc(), config.Default()))

	badRet := Function{Ret: kw(KwNumber)}
	mustFail(t, Assign(wide, badRet, loc(), config.Default()))
}

func TestClassNominalEquality(t *testing.T) {
	a := Class{Name: "Widget", Members: []ClassMember{{Kind: CMProperty, Key: "x", PropType: kw(KwNumber)}}}
	b := Class{Name: "Widget", Members: []ClassMember{{Kind: CMProperty, Key: "x", PropType: kw(KwNumber)}}}
	c := Class{Name: "Gadget"}
	mustOK(t, Assign(a, b, loc(), config.Default()))
	mustFail(t, Assign(a, c, loc(), config.Default()))
}

func TestUnimplementedNotConfusedWithSuccess(t *testing.T) {
	l := Constructor{Ret: kw(KwAny)}
	r := Predicate{Param: "x", Tested: kw(KwString)}
	err := Assign(l, r, loc(), config.Default())
	mustFail(t, err)
	var af *AssignFailed
	if !errors.As(err, &af) {
		t.Fatalf("expected *AssignFailed root, got %T", err)
	}
	found := false
	for _, c := range af.Causes {
		if _, ok := c.(*Unimplemented); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Unimplemented cause, got %v", af.Causes)
	}
}

func TestInterfaceVsClassInstanceOnlyChecksProperties(t *testing.T) {
	l := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	widget := Class{Name: "Widget", Members: []ClassMember{{Kind: CMProperty, Key: "x", PropType: kw(KwNumber)}}}
	instance := ClassInstance{Class: widget}
	mustOK(t, Assign(l, instance, loc(), config.Default()))

	withMethod := TypeLit{Members: []TypeElement{{ElemKind: ElemMethod, Key: Key{KeyKind: KeyIdent, Ident: "m"}}}}
	err := Assign(withMethod, instance, loc(), config.Default())
	mustFail(t, err)
	var af *AssignFailed
	if !errors.As(err, &af) {
		t.Fatalf("expected *AssignFailed root, got %T", err)
	}
	found := false
	for _, c := range af.Causes {
		if _, ok := c.(*Unimplemented); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Unimplemented for a non-Property member against ClassInstance, got %v", af.Causes)
	}
}

func TestStructuralMemberAssignmentRejectsValueShapes(t *testing.T) {
	l := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	mustFail(t, Assign(l, Tuple{Elems: []Type{kw(KwNumber)}}, loc(), config.Default()))
	mustFail(t, Assign(l, Array{Elem: kw(KwNumber)}, loc(), config.Default()))
	mustFail(t, Assign(l, numLit(1), loc(), config.Default()))
}

func TestStructuralMemberAssignmentPermissiveOnOtherShapes(t *testing.T) {
	// A right-hand shape outside the object/class/value families leaves
	// L's members unresolved: nothing is checked and the assignment is
	// permitted.
	l := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	mustOK(t, Assign(l, Function{Ret: kw(KwAny)}, loc(), config.Default()))
	mustOK(t, Assign(l, kw(KwNumber), loc(), config.Default()))
}

func TestPurityNoSharedState(t *testing.T) {
	l := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	r := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	for i := 0; i < 5; i++ {
		mustOK(t, Assign(l, r, loc(), config.Default()))
	}
}

// --- end-to-end scenarios ---

func TestScenarioObjectOnLeftAcceptsFunction(t *testing.T) {
	mustOK(t, Assign(kw(KwObject), Function{Ret: kw(KwAny)}, loc(), config.Default()))
	mustFail(t, Assign(kw(KwObject), Array{Elem: kw(KwAny)}, loc(), config.Default()))
}

func TestScenarioParamConstraintReduces(t *testing.T) {
	tParam := Param{Name: "T", Constraint: kw(KwString)}
	mustOK(t, Assign(tParam, strLit("x"), loc(), config.Default()))
	mustFail(t, Assign(tParam, kw(KwNumber), loc(), config.Default()))
}

func TestScenarioAnyParamAssignableToEmptyTypeLit(t *testing.T) {
	mustOK(t, Assign(TypeLit{}, Param{Name: "T"}, loc(), config.Default()))
	unconstrained := Param{Name: "U"}
	mustOK(t, Assign(TypeLit{}, unconstrained, loc(), config.Default()))
	nonEmpty := TypeLit{Members: []TypeElement{prop("x", kw(KwNumber))}}
	mustFail(t, Assign(nonEmpty, unconstrained, loc(), config.Default()))
}

func TestScenarioArrayVsTupleElementMismatch(t *testing.T) {
	l := Array{Elem: kw(KwNumber)}
	r := Tuple{Elems: []Type{kw(KwNumber), kw(KwString)}}
	err := Assign(l, r, loc(), config.Default())
	mustFail(t, err)
	var af *AssignFailed
	if !errors.As(err, &af) {
		t.Fatalf("expected *AssignFailed root, got %T", err)
	}
	if len(af.Causes) != 1 {
		t.Fatalf("expected exactly one cause, got %d", len(af.Causes))
	}
}

func TestScenarioEnumClassifiedByInitializer(t *testing.T) {
	numericEnum := Enum{Members: []EnumMember{
		{Name: "A", Init: &Literal{LitKind: LitNumber, Num: 0}},
		{Name: "B", Init: &Literal{LitKind: LitNumber, Num: 1}},
	}}
	mustOK(t, Assign(kw(KwNumber), numericEnum, loc(), config.Default()))
	mustFail(t, Assign(kw(KwString), numericEnum, loc(), config.Default()))

	uninitializedEnum := Enum{Members: []EnumMember{{Name: "A"}, {Name: "B"}}}
	mustOK(t, Assign(kw(KwNumber), uninitializedEnum, loc(), config.Default()))
	mustFail(t, Assign(kw(KwString), uninitializedEnum, loc(), config.Default()))

	mixedEnum := Enum{Members: []EnumMember{
		{Name: "A", Init: &Literal{LitKind: LitNumber, Num: 0}},
		{Name: "B", Init: &Literal{LitKind: LitString, Str: "b"}},
	}}
	for _, l := range []Type{kw(KwNumber), kw(KwString)} {
		err := Assign(l, mixedEnum, loc(), config.Default())
		mustFail(t, err)
		var unimpl *Unimplemented
		if !errors.As(err, &unimpl) {
			t.Fatalf("expected an Unimplemented cause for a mixed enum, got %v", err)
		}
	}
}

func TestPhaseEFallbackSuccessOnStructuralMatch(t *testing.T) {
	a := Function{TypeParams: []TypeParamDecl{{Name: "T"}}, Ret: kw(KwAny)}
	b := Function{TypeParams: []TypeParamDecl{{Name: "U"}}, Ret: kw(KwAny)}
	mustOK(t, Assign(a, b, loc(), config.Default()))
}
