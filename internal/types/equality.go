package types

// Equal is span-insensitive structural equality: since this
// algebra never embeds a source span inside a Type value (only the
// top-level SourceLoc passed to Assign carries one), plain recursive
// structural comparison is span-insensitive by construction — there is no
// separate "strip the span" step to perform. Union/Intersection members
// compare as sets rather than sequences.
func Equal(a, b Type) bool {
	return equal(a, b, false)
}

// EqualIgnoringNames additionally ignores Interface/Class/Param/
// TypeParamDecl binding names, used by the Phase E fallback and by
// unkeyed Call/Constructor element matching. Member keys and enum
// identity are NOT binding names and are still compared exactly.
func EqualIgnoringNames(a, b Type) bool {
	return equal(a, b, true)
}

func equal(a, b Type, ignoreNames bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Keyword:
		return av.Kw == b.(Keyword).Kw
	case Literal:
		bv := b.(Literal)
		if av.LitKind != bv.LitKind {
			return false
		}
		switch av.LitKind {
		case LitString:
			return av.Str == bv.Str
		case LitNumber:
			return av.Num == bv.Num
		case LitBoolean:
			return av.Bool == bv.Bool
		}
		return false
	case Array:
		return equal(av.Elem, b.(Array).Elem, ignoreNames)
	case Tuple:
		bv := b.(Tuple)
		return equalTypeSlice(av.Elems, bv.Elems, ignoreNames)
	case Union:
		bv := b.(Union)
		return equalTypeSet(av.Alts, bv.Alts, ignoreNames)
	case Intersection:
		bv := b.(Intersection)
		return equalTypeSet(av.Parts, bv.Parts, ignoreNames)
	case TypeLit:
		bv := b.(TypeLit)
		return equalMemberSet(av.Members, bv.Members, ignoreNames)
	case Interface:
		bv := b.(Interface)
		if !ignoreNames && av.Name != bv.Name {
			return false
		}
		return equalMemberSet(av.Members, bv.Members, ignoreNames) &&
			equalTypeSet(av.Extends, bv.Extends, ignoreNames)
	case Class:
		bv := b.(Class)
		if !ignoreNames && av.Name != bv.Name {
			return false
		}
		return equalClassMemberSet(av.Members, bv.Members, ignoreNames)
	case ClassInstance:
		bv := b.(ClassInstance)
		return equal(av.Class, bv.Class, ignoreNames) &&
			equalTypeSlice(av.TypeArgs, bv.TypeArgs, ignoreNames)
	case Function:
		bv := b.(Function)
		return equalSignature(Signature{av.TypeParams, av.Params, av.Ret},
			Signature{bv.TypeParams, bv.Params, bv.Ret}, ignoreNames)
	case Constructor:
		bv := b.(Constructor)
		return equalSignature(Signature{av.TypeParams, av.Params, av.Ret},
			Signature{bv.TypeParams, bv.Params, bv.Ret}, ignoreNames)
	case Param:
		bv := b.(Param)
		if !ignoreNames && av.Name != bv.Name {
			return false
		}
		return equal(av.Constraint, bv.Constraint, ignoreNames) &&
			equal(av.Default, bv.Default, ignoreNames)
	case Enum:
		bv := b.(Enum)
		if av.ID != bv.ID || len(av.Members) != len(bv.Members) {
			return false
		}
		for i := range av.Members {
			if av.Members[i].Name != bv.Members[i].Name {
				return false
			}
			if (av.Members[i].Init == nil) != (bv.Members[i].Init == nil) {
				return false
			}
			if av.Members[i].Init != nil && !equal(*av.Members[i].Init, *bv.Members[i].Init, ignoreNames) {
				return false
			}
		}
		return true
	case EnumVariant:
		bv := b.(EnumVariant)
		return av.EnumName == bv.EnumName && av.MemberName == bv.MemberName
	case This:
		return true
	case Predicate:
		bv := b.(Predicate)
		return av.Param == bv.Param && equal(av.Tested, bv.Tested, ignoreNames)
	case Ref:
		bv := b.(Ref)
		return av.Name == bv.Name && equalTypeSlice(av.Args, bv.Args, ignoreNames)
	default:
		return false
	}
}

func equalTypeSlice(a, b []Type, ignoreNames bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i], ignoreNames) {
			return false
		}
	}
	return true
}

// equalTypeSet compares two []Type as multisets (order-independent),
// matching how Union/Intersection model their alternatives as a set of
// Type rather than a sequence.
func equalTypeSet(a, b []Type, ignoreNames bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, av := range a {
		found := false
		for j, bv := range b {
			if used[j] {
				continue
			}
			if equal(av, bv, ignoreNames) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalMemberSet(a, b []TypeElement, ignoreNames bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, am := range a {
		found := false
		for j, bm := range b {
			if used[j] {
				continue
			}
			if equalElement(am, bm, ignoreNames) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalElement(a, b TypeElement, ignoreNames bool) bool {
	if a.ElemKind != b.ElemKind {
		return false
	}
	switch a.ElemKind {
	case ElemProperty:
		if !keyEqual(a.Key, b.Key) || a.Optional != b.Optional {
			return false
		}
		return equal(a.PropType, b.PropType, ignoreNames)
	case ElemMethod:
		if !keyEqual(a.Key, b.Key) {
			return false
		}
		return equalSignatureSlice(a.Signatures, b.Signatures, ignoreNames)
	case ElemCall, ElemConstructor:
		return equalSignatureSlice(a.Signatures, b.Signatures, ignoreNames)
	case ElemIndex:
		return equal(a.IndexKeyType, b.IndexKeyType, ignoreNames) &&
			equal(a.IndexValueType, b.IndexValueType, ignoreNames)
	default:
		return false
	}
}

func equalSignatureSlice(a, b []Signature, ignoreNames bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, as := range a {
		found := false
		for j, bs := range b {
			if used[j] {
				continue
			}
			if equalSignature(as, bs, ignoreNames) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalSignature(a, b Signature, ignoreNames bool) bool {
	if len(a.TypeParams) != len(b.TypeParams) {
		return false
	}
	for i := range a.TypeParams {
		if !ignoreNames && a.TypeParams[i].Name != b.TypeParams[i].Name {
			return false
		}
		if !equal(a.TypeParams[i].Constraint, b.TypeParams[i].Constraint, ignoreNames) {
			return false
		}
	}
	return equalTypeSlice(a.Params, b.Params, ignoreNames) && equal(a.Ret, b.Ret, ignoreNames)
}

func equalClassMemberSet(a, b []ClassMember, ignoreNames bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, am := range a {
		found := false
		for j, bm := range b {
			if used[j] {
				continue
			}
			if equalClassMember(am, bm, ignoreNames) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalClassMember(a, b ClassMember, ignoreNames bool) bool {
	if a.Kind != b.Kind || a.Key != b.Key || a.Static != b.Static {
		return false
	}
	if !equal(a.PropType, b.PropType, ignoreNames) {
		return false
	}
	return equalSignatureSlice(a.Signatures, b.Signatures, ignoreNames)
}
