package types

// Phase names the five stages Assign dispatches through, in order. Each
// phase is tried in full before the next begins; the first rule that
// matches decides the outcome.
type Phase int

const (
	PhaseWrapperAsymmetry Phase = iota // A: Boolean/boolean, String/string, Number/number
	PhaseTopOnLeft                     // B: any/unknown on the left
	PhaseKeyedOnRight                  // C: rules keyed on the shape of R
	PhaseKeyedOnLeft                   // D: rules keyed on the shape of L
	PhaseFallback                      // E: structural equality, else Unimplemented
)

// wrapperPair is one entry of Phase A's boxed-wrapper/primitive table.
type wrapperPair struct {
	Kw      KeywordKind
	Wrapper string
}

// wrapperPairs is Phase A's dispatch table: for each (primitive, Wrapper)
// pair, a Keyword(primitive) on the left rejects an Interface(Wrapper) on
// the right, and an Interface(Wrapper) on the left accepts a
// Keyword(primitive) on the right.
var wrapperPairs = []wrapperPair{
	{KwBoolean, "Boolean"},
	{KwString, "String"},
	{KwNumber, "Number"},
}

// isObjectAccepted is Phase D.5's exact accepted-R set for
// L = Keyword(object): no arrays, tuples, or class instances — a
// documented limitation, not an oversight; see DESIGN.md's Open Question
// decisions.
func isObjectAccepted(r Type) bool {
	switch r.(type) {
	case Function, Constructor, Enum, Class, TypeLit:
		return true
	}
	if isKeyword(r, KwNumber) || isKeyword(r, KwString) {
		return true
	}
	return false
}
