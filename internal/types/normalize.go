package types

// Normalize reduces T to the canonical shape the dispatch table matches
// on: a single-alternative Union unwraps to its one alternative (the
// algebra's invariant is that a "real" Union always carries two or more
// alternatives, but defensive callers — fixtures, wire decoding — may
// still hand in a degenerate one). Every other case is returned as-is;
// this algebra never carries an alias or "Static" indirection wrapper for
// Normalize to strip (see DESIGN.md).
func Normalize(t Type) Type {
	if t == nil {
		return t
	}
	if u, ok := t.(Union); ok && len(u.Alts) == 1 {
		return Normalize(u.Alts[0])
	}
	return t
}

// GeneralizeLit widens a Literal to its underlying primitive Keyword,
// leaving every other case untouched. Used by Phase A's wrapper/primitive
// asymmetry check before comparing against Boolean/String/Number wrapper
// interfaces.
func GeneralizeLit(t Type) Type {
	lit, ok := t.(Literal)
	if !ok {
		return t
	}
	switch lit.LitKind {
	case LitString:
		return Keyword{Kw: KwString}
	case LitNumber:
		return Keyword{Kw: KwNumber}
	case LitBoolean:
		return Keyword{Kw: KwBoolean}
	default:
		return t
	}
}

func isKeyword(t Type, kw KeywordKind) bool {
	k, ok := t.(Keyword)
	return ok && k.Kw == kw
}

func isAny(t Type) bool     { return isKeyword(t, KwAny) }
func isUnknown(t Type) bool { return isKeyword(t, KwUnknown) }
func isTop(t Type) bool     { return isAny(t) || isUnknown(t) }
func isUndefined(t Type) bool { return isKeyword(t, KwUndefined) }
func isNull(t Type) bool      { return isKeyword(t, KwNull) }
