package assign

import (
	"testing"

	"github.com/shapelang/shapec/internal/types"
)

func TestCheckDefaultsMatchDefaultConfig(t *testing.T) {
	loc := types.SourceLoc{File: "t"}
	if err := Check(types.Keyword{Kw: types.KwString}, types.Keyword{Kw: types.KwNull}, loc); err != nil {
		t.Fatalf("expected null to be assignable to string under default (non-strict) config, got %v", err)
	}
}

func TestCheckWithStrictNullChecks(t *testing.T) {
	loc := types.SourceLoc{File: "t"}
	err := Check(types.Keyword{Kw: types.KwString}, types.Keyword{Kw: types.KwNull}, loc, WithStrictNullChecks())
	if err == nil {
		t.Fatalf("expected null to be rejected under strict null checks")
	}
}

func TestCheckWithMaxRecursionDepth(t *testing.T) {
	loc := types.SourceLoc{File: "t"}
	deep := types.Array{Elem: types.Keyword{Kw: types.KwNumber}}
	if err := Check(deep, deep, loc, WithMaxRecursionDepth(1)); err != nil {
		t.Fatalf("unexpected error for a shallow check under a tight depth budget: %v", err)
	}
}
