package wire

import (
	"testing"

	"github.com/shapelang/shapec/internal/types"
)

func TestTypeRoundTrip(t *testing.T) {
	cases := []types.Type{
		types.Keyword{Kw: types.KwString},
		types.Literal{LitKind: types.LitNumber, Num: 42},
		types.Array{Elem: types.Keyword{Kw: types.KwBoolean}},
		types.Tuple{Elems: []types.Type{types.Keyword{Kw: types.KwString}, types.Keyword{Kw: types.KwNumber}}},
		types.Union{Alts: []types.Type{types.Keyword{Kw: types.KwString}, types.Keyword{Kw: types.KwNumber}}},
		types.TypeLit{Members: []types.TypeElement{
			{ElemKind: types.ElemProperty, Key: types.Key{KeyKind: types.KeyIdent, Ident: "x"}, PropType: types.Keyword{Kw: types.KwNumber}},
		}},
		types.This{},
		types.EnumVariant{EnumName: "Color", MemberName: "Red"},
	}
	for _, c := range cases {
		encoded, err := EncodeType(c)
		if err != nil {
			t.Fatalf("encode %s: %v", c, err)
		}
		decoded, err := DecodeType(encoded)
		if err != nil {
			t.Fatalf("decode %s: %v", c, err)
		}
		if !types.Equal(c, decoded) {
			t.Fatalf("round trip mismatch: %s vs %s", c.String(), decoded.String())
		}
	}
}

func TestErrorRoundTripPreservesTaxonomyShape(t *testing.T) {
	loc := types.SourceLoc{File: "t"}
	original := types.NewAssignFailed(types.Keyword{Kw: types.KwString}, types.Keyword{Kw: types.KwNumber}, loc,
		types.NewMissingFields(loc, nil))

	encoded, err := EncodeError(original)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeError(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	re, ok := decoded.(*ReconstitutedError)
	if !ok {
		t.Fatalf("expected *ReconstitutedError, got %T", decoded)
	}
	if re.TaxonomyKind != "AssignFailed" {
		t.Fatalf("expected AssignFailed root, got %s", re.TaxonomyKind)
	}
	if len(re.Causes) != 1 || re.Causes[0].TaxonomyKind != "MissingFields" {
		t.Fatalf("expected a nested MissingFields cause, got %+v", re.Causes)
	}
}

func TestDecodeEmptyStringIsSuccess(t *testing.T) {
	decoded, err := DecodeError("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded != nil {
		t.Fatalf("expected nil for empty payload, got %v", decoded)
	}
}
