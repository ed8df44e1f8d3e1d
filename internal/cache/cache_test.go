package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shapelang/shapec/internal/config"
	"github.com/shapelang/shapec/internal/types"
)

func TestDigestStableForEqualQueries(t *testing.T) {
	l := types.Keyword{Kw: types.KwString}
	r := types.Literal{LitKind: types.LitString, Str: "hi"}
	cfg := config.Default()
	if Digest(l, r, cfg) != Digest(l, r, cfg) {
		t.Fatalf("expected digest to be stable for identical inputs")
	}
}

func TestDigestDiffersOnStrictNullChecks(t *testing.T) {
	l := types.Keyword{Kw: types.KwString}
	r := types.Keyword{Kw: types.KwNull}
	a := Digest(l, r, config.Config{StrictNullChecks: false})
	b := Digest(l, r, config.Config{StrictNullChecks: true})
	if a == b {
		t.Fatalf("expected digest to vary with cfg.StrictNullChecks")
	}
}

func TestCheckCachedHitAndMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(context.Background(), filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	l := types.Keyword{Kw: types.KwString}
	r := types.Literal{LitKind: types.LitString, Str: "hi"}
	loc := types.SourceLoc{File: "t"}
	cfg := config.Default()

	if err := c.CheckCached(context.Background(), l, r, loc, cfg); err != nil {
		t.Fatalf("expected success on cache miss, got %v", err)
	}
	if err := c.CheckCached(context.Background(), l, r, loc, cfg); err != nil {
		t.Fatalf("expected success on cache hit, got %v", err)
	}

	badR := types.Keyword{Kw: types.KwNumber}
	if err := c.CheckCached(context.Background(), l, badR, loc, cfg); err == nil {
		t.Fatalf("expected failure to be cached and replayed, got success")
	}
	if err := c.CheckCached(context.Background(), l, badR, loc, cfg); err == nil {
		t.Fatalf("expected cached failure to replay as failure")
	}
}
