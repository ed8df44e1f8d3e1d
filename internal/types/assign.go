package types

import (
	"fmt"

	"github.com/shapelang/shapec/internal/config"
)

// Assign decides whether a value of type r may be used where a value of
// type l is expected. The result is nil on success, or an AssignError
// whose root is always *AssignFailed unless the failure is already an
// *AssignFailed — every failing top-level call therefore returns a
// uniformly-rooted error tree, with the more specific taxonomy member
// (UnionError, MissingFields, …) nested one level inside Causes.
func Assign(l, r Type, loc SourceLoc, cfg config.Config) error {
	return assign(l, r, loc, cfg, 0)
}

// assign is the internal, depth-tracked entry every recursive rule calls
// instead of the exported Assign, so the recursion-depth budget is
// threaded through without appearing in the public signature.
func assign(l, r Type, loc SourceLoc, cfg config.Config, depth int) error {
	err := decide(l, r, loc, cfg, depth)
	if err == nil {
		return nil
	}
	if af, ok := err.(*AssignFailed); ok {
		return af
	}
	return NewAssignFailed(l, r, loc, err)
}

// decide implements the five-phase dispatch table against already-
// normalized L and R.
func decide(l, r Type, loc SourceLoc, cfg config.Config, depth int) error {
	if cfg.MaxRecursionDepth > 0 && depth > cfg.MaxRecursionDepth {
		return NewUnimplemented(loc, l, r)
	}

	l = Normalize(l)
	r = Normalize(r)

	if _, ok := l.(Ref); ok {
		panic(fmt.Sprintf("types: unresolved Ref on the left of assign: %s", l.String()))
	}
	if _, ok := r.(Ref); ok {
		panic(fmt.Sprintf("types: unresolved Ref on the right of assign: %s", r.String()))
	}

	// Phase A: wrapper/primitive asymmetry.
	if res, matched := phaseWrapperAsymmetry(l, r, loc); matched {
		return res
	}

	// Phase B: any/unknown on the left accepts everything.
	if isTop(l) {
		return nil
	}

	// Phase C: rules keyed on the shape of R.
	if res, matched := phaseC(l, r, loc, cfg, depth); matched {
		return res
	}

	// Phase D: rules keyed on the shape of L.
	if res, matched := phaseD(l, r, loc, cfg, depth); matched {
		return res
	}

	// Phase E: structural fallback.
	if EqualIgnoringNames(l, r) {
		return nil
	}
	return NewUnimplemented(loc, l, r)
}

// phaseWrapperAsymmetry implements Phase A: for each
// (primitive, Wrapper) pair, a Keyword(primitive) on the left rejects an
// Interface(Wrapper) on the right, and an Interface(Wrapper) on the left
// accepts a Keyword(primitive) on the right, or a literal that widens to
// it.
func phaseWrapperAsymmetry(l, r Type, loc SourceLoc) (error, bool) {
	rWide := GeneralizeLit(r)
	for _, p := range wrapperPairs {
		if isKeyword(l, p.Kw) {
			if iface, ok := rWide.(Interface); ok && iface.Name == p.Wrapper {
				return NewAssignedWrapperToPrimitive(loc), true
			}
		}
		if iface, ok := l.(Interface); ok && iface.Name == p.Wrapper {
			if isKeyword(rWide, p.Kw) {
				return nil, true
			}
		}
	}
	return nil, false
}

// phaseC implements Phase C: rules keyed on the shape of R, tried in a
// fixed order.
func phaseC(l, r Type, loc SourceLoc, cfg config.Config, depth int) (error, bool) {
	// C.1: undefined/null under non-strict null checks.
	if (isUndefined(r) || isNull(r)) && !cfg.StrictNullChecks {
		return nil, true
	}

	// C.2: R = Union demands every alternative be accepted.
	if u, ok := r.(Union); ok {
		var failures []error
		for _, alt := range u.Alts {
			if err := assign(l, alt, loc, cfg, depth+1); err != nil {
				failures = append(failures, err)
			}
		}
		if len(failures) > 0 {
			return NewUnionError(loc, failures), true
		}
		return nil, true
	}

	// C.3: R = any.
	if isAny(r) {
		return nil, true
	}

	// C.4: R = unknown, restricted to L ∈ {any, undefined}.
	if isUnknown(r) {
		if isAny(l) || isUndefined(l) {
			return nil, true
		}
		return NewAssignFailed(l, r, loc), true
	}

	// C.5: R = Param, by identity or constraint, or an empty TypeLit{} on
	// the left (a fully unconstrained object type is always an acceptable
	// upper bound for a type parameter).
	if p, ok := r.(Param); ok {
		if lp, ok := l.(Param); ok && lp.Name == p.Name {
			return nil, true
		}
		if p.Constraint != nil {
			return assign(l, p.Constraint, loc, cfg, depth+1), true
		}
		if tl, ok := l.(TypeLit); ok && len(tl.Members) == 0 {
			return nil, true
		}
		return NewAssignFailed(l, r, loc), true
	}

	// C.6: R = Enum, classified by its member-initializer type: a
	// uniformly numeric or uniformly string enum behaves like that
	// keyword, an uninitialized enum defaults to number. A genuine mix of
	// string and numeric initializers is undecided at this layer and must
	// surface as Unimplemented, never as a silent verdict either way.
	if renum, ok := r.(Enum); ok {
		if kw, ok := enumUnderlyingKeyword(renum); ok {
			return assign(l, Keyword{Kw: kw}, loc, cfg, depth+1), true
		}
		return NewUnimplemented(loc, l, r), true
	}

	return nil, false
}

// enumUnderlyingKeyword classifies an Enum by its members' initializer
// literal kinds: if any member has a string initializer, the enum is
// string-classified unless some other member also has a numeric
// initializer, in which case the mix is unclassified. Otherwise —
// including when no member has any initializer at all — the enum
// defaults to number.
func enumUnderlyingKeyword(e Enum) (KeywordKind, bool) {
	hasStr, hasNum := false, false
	for _, m := range e.Members {
		if m.Init == nil {
			continue
		}
		switch m.Init.LitKind {
		case LitString:
			hasStr = true
		case LitNumber:
			hasNum = true
		}
	}
	switch {
	case hasStr && hasNum:
		return 0, false
	case hasStr:
		return KwString, true
	default:
		return KwNumber, true
	}
}

// phaseD implements Phase D: rules keyed on the shape of L.
func phaseD(l, r Type, loc SourceLoc, cfg config.Config, depth int) (error, bool) {
	switch lv := l.(type) {

	case Param:
		// D.1: constrained type parameter reduces to its constraint.
		if lv.Constraint != nil {
			return assign(lv.Constraint, r, loc, cfg, depth+1), true
		}
		return nil, false

	case Array:
		// D.2.
		switch rv := r.(type) {
		case Array:
			if err := assign(lv.Elem, rv.Elem, loc, cfg, depth+1); err != nil {
				return NewAssignFailed(l, r, loc, err), true
			}
			return nil, true
		case Tuple:
			for _, rt := range rv.Elems {
				if err := assign(lv.Elem, rt, loc, cfg, depth+1); err != nil {
					return NewAssignFailed(l, r, loc, err), true
				}
			}
			return nil, true
		default:
			return NewAssignFailed(l, r, loc), true
		}

	case Union:
		// D.3: offer every alternative; succeed if any accepts R.
		var failures []error
		for _, alt := range lv.Alts {
			if err := assign(alt, r, loc, cfg, depth+1); err == nil {
				return nil, true
			} else {
				failures = append(failures, err)
			}
		}
		return NewUnionError(loc, failures), true

	case Intersection:
		// D.4: every part must accept R; short-circuit on first failure.
		for _, part := range lv.Parts {
			if err := assign(part, r, loc, cfg, depth+1); err != nil {
				return NewIntersectionError(loc, err), true
			}
		}
		return nil, true

	case Keyword:
		// D.5: object's special accepted-R set, falling through (not
		// failing) to D.6 general keyword handling when it doesn't match.
		if lv.Kw == KwObject && isObjectAccepted(r) {
			return nil, true
		}
		// D.6: general keyword comparison.
		if isKeyword(r, lv.Kw) {
			return nil, true
		}
		if lit, ok := r.(Literal); ok {
			switch {
			case lv.Kw == KwString && lit.LitKind == LitString,
				lv.Kw == KwNumber && lit.LitKind == LitNumber,
				lv.Kw == KwBoolean && lit.LitKind == LitBoolean:
				return nil, true
			}
		}
		return NewAssignFailed(l, r, loc), true

	case Enum:
		// D.7.
		if ev, ok := r.(EnumVariant); ok && ev.EnumName == lv.ID {
			return nil, true
		}
		return NewAssignFailed(l, r, loc), true

	case EnumVariant:
		// D.8.
		if rv, ok := r.(EnumVariant); ok && rv.EnumName == lv.EnumName && rv.MemberName == lv.MemberName {
			return nil, true
		}
		return NewAssignFailed(l, r, loc), true

	case This:
		// D.9: always fails.
		return NewCannotAssignToThis(loc), true

	case Interface:
		// D.10.
		return assignMembers(l, lv.Members, r, loc, cfg, depth), true

	case TypeLit:
		// D.10.
		return assignMembers(l, lv.Members, r, loc, cfg, depth), true

	case Literal:
		// D.11: only when R is also a Literal.
		if rl, ok := r.(Literal); ok {
			if literalsEqual(lv, rl) {
				return nil, true
			}
			return NewAssignFailed(l, r, loc), true
		}
		return nil, false

	case Function:
		// D.12: only when both sides are parameterless-of-type-params
		// functions; reduces to return-type covariance.
		if rv, ok := r.(Function); ok && len(lv.TypeParams) == 0 && len(rv.TypeParams) == 0 {
			return assign(lv.Ret, rv.Ret, loc, cfg, depth+1), true
		}
		return nil, false

	case Tuple:
		// D.13.
		if rv, ok := r.(Tuple); ok {
			if len(lv.Elems) < len(rv.Elems) {
				return NewAssignFailed(l, r, loc), true
			}
			for i, rt := range rv.Elems {
				if isUndefined(rt) {
					continue
				}
				if err := assign(lv.Elems[i], rt, loc, cfg, depth+1); err != nil {
					return NewAssignFailed(l, r, loc, err), true
				}
			}
			return nil, true
		}
		return nil, false

	case Predicate:
		// D.14.
		if isKeyword(r, KwBoolean) {
			return nil, true
		}
		if lit, ok := r.(Literal); ok && lit.LitKind == LitBoolean {
			return nil, true
		}
		return NewAssignFailed(l, r, loc), true

	case Class:
		// D.15.
		switch rv := r.(type) {
		case Class:
			if Equal(lv, rv) {
				return nil, true
			}
		case ClassInstance:
			if Equal(lv, rv.Class) {
				return nil, true
			}
		}
		return NewAssignFailed(l, r, loc), true
	}

	return nil, false
}

func literalsEqual(a, b Literal) bool {
	if a.LitKind != b.LitKind {
		return false
	}
	switch a.LitKind {
	case LitString:
		return a.Str == b.Str
	case LitNumber:
		return a.Num == b.Num
	case LitBoolean:
		return a.Bool == b.Bool
	default:
		return false
	}
}
