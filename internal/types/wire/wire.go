// Package wire serializes types.Type and types.AssignError to and from
// JSON, for boundaries that cannot carry Go values directly: the gRPC
// façade, which moves only opaque strings across the proto boundary, and
// the SQLite query cache. It never changes the taxonomy or the
// propagation rules defined in internal/types; it only gives them a wire
// form.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/shapelang/shapec/internal/types"
)

// --- Type wire form ---

type typeNode struct {
	Kind string `json:"kind"`

	// Keyword
	Keyword string `json:"keyword,omitempty"`

	// Literal
	LitKind string  `json:"lit_kind,omitempty"`
	Str     string  `json:"str,omitempty"`
	Num     float64 `json:"num,omitempty"`
	Bool    bool    `json:"bool,omitempty"`

	// Array
	Elem *typeNode `json:"elem,omitempty"`

	// Tuple / Union / Intersection
	Items []*typeNode `json:"items,omitempty"`

	// TypeLit / Interface
	Name    string      `json:"name,omitempty"`
	Members []*typeNode `json:"members,omitempty"`
	// Property-only, set when Kind == "member"
	Optional bool      `json:"optional,omitempty"`
	PropType *typeNode `json:"prop_type,omitempty"`

	// Param
	Constraint *typeNode `json:"constraint,omitempty"`

	// EnumVariant
	EnumName   string `json:"enum_name,omitempty"`
	MemberName string `json:"member_name,omitempty"`
}

// EncodeType serializes a types.Type to its JSON wire form.
func EncodeType(t types.Type) (string, error) {
	node, err := toNode(t)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(node)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeType parses a JSON wire form back into a types.Type.
func DecodeType(data string) (types.Type, error) {
	var node typeNode
	if err := json.Unmarshal([]byte(data), &node); err != nil {
		return nil, err
	}
	return fromNode(&node)
}

func toNode(t types.Type) (*typeNode, error) {
	if t == nil {
		return nil, fmt.Errorf("wire: cannot encode nil type")
	}
	switch v := t.(type) {
	case types.Keyword:
		return &typeNode{Kind: "keyword", Keyword: v.String()}, nil
	case types.Literal:
		n := &typeNode{Kind: "literal"}
		switch v.LitKind {
		case types.LitString:
			n.LitKind, n.Str = "string", v.Str
		case types.LitNumber:
			n.LitKind, n.Num = "number", v.Num
		case types.LitBoolean:
			n.LitKind, n.Bool = "boolean", v.Bool
		}
		return n, nil
	case types.Array:
		elem, err := toNode(v.Elem)
		if err != nil {
			return nil, err
		}
		return &typeNode{Kind: "array", Elem: elem}, nil
	case types.Tuple:
		items, err := toNodeList(v.Elems)
		if err != nil {
			return nil, err
		}
		return &typeNode{Kind: "tuple", Items: items}, nil
	case types.Union:
		items, err := toNodeList(v.Alts)
		if err != nil {
			return nil, err
		}
		return &typeNode{Kind: "union", Items: items}, nil
	case types.Intersection:
		items, err := toNodeList(v.Parts)
		if err != nil {
			return nil, err
		}
		return &typeNode{Kind: "intersection", Items: items}, nil
	case types.TypeLit:
		members, err := toMemberNodes(v.Members)
		if err != nil {
			return nil, err
		}
		return &typeNode{Kind: "type_lit", Members: members}, nil
	case types.Interface:
		members, err := toMemberNodes(v.Members)
		if err != nil {
			return nil, err
		}
		return &typeNode{Kind: "interface", Name: v.Name, Members: members}, nil
	case types.This:
		return &typeNode{Kind: "this"}, nil
	case types.EnumVariant:
		return &typeNode{Kind: "enum_variant", EnumName: v.EnumName, MemberName: v.MemberName}, nil
	case types.Param:
		n := &typeNode{Kind: "param", Name: v.Name}
		if v.Constraint != nil {
			c, err := toNode(v.Constraint)
			if err != nil {
				return nil, err
			}
			n.Constraint = c
		}
		return n, nil
	default:
		// Classes, functions, predicates, and enums are not expected to
		// cross the wire boundary (the RPC surface only ever carries
		// already-elaborated structural/value types); callers needing
		// those should use the embeddable API in-process instead.
		return nil, fmt.Errorf("wire: unsupported type kind %s for wire encoding", t.Kind())
	}
}

func toNodeList(ts []types.Type) ([]*typeNode, error) {
	out := make([]*typeNode, 0, len(ts))
	for _, t := range ts {
		n, err := toNode(t)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func toMemberNodes(members []types.TypeElement) ([]*typeNode, error) {
	out := make([]*typeNode, 0, len(members))
	for _, m := range members {
		if m.ElemKind != types.ElemProperty {
			continue
		}
		propType, err := toNode(propTypeOrAny(m.PropType))
		if err != nil {
			return nil, err
		}
		out = append(out, &typeNode{
			Kind:     "member",
			Name:     m.Key.String(),
			Optional: m.Optional,
			PropType: propType,
		})
	}
	return out, nil
}

func propTypeOrAny(t types.Type) types.Type {
	if t == nil {
		return types.Keyword{Kw: types.KwAny}
	}
	return t
}

var keywordByName = map[string]types.KeywordKind{
	"any": types.KwAny, "unknown": types.KwUnknown, "string": types.KwString,
	"number": types.KwNumber, "boolean": types.KwBoolean, "object": types.KwObject,
	"void": types.KwVoid, "undefined": types.KwUndefined, "null": types.KwNull,
	"never": types.KwNever, "symbol": types.KwSymbol, "bigint": types.KwBigint,
}

func fromNode(n *typeNode) (types.Type, error) {
	if n == nil {
		return nil, fmt.Errorf("wire: nil type node")
	}
	switch n.Kind {
	case "keyword":
		kw, ok := keywordByName[n.Keyword]
		if !ok {
			return nil, fmt.Errorf("wire: unknown keyword %q", n.Keyword)
		}
		return types.Keyword{Kw: kw}, nil
	case "literal":
		switch n.LitKind {
		case "string":
			return types.Literal{LitKind: types.LitString, Str: n.Str}, nil
		case "number":
			return types.Literal{LitKind: types.LitNumber, Num: n.Num}, nil
		case "boolean":
			return types.Literal{LitKind: types.LitBoolean, Bool: n.Bool}, nil
		default:
			return nil, fmt.Errorf("wire: unknown literal kind %q", n.LitKind)
		}
	case "array":
		elem, err := fromNode(n.Elem)
		if err != nil {
			return nil, err
		}
		return types.Array{Elem: elem}, nil
	case "tuple":
		elems, err := fromNodeList(n.Items)
		if err != nil {
			return nil, err
		}
		return types.Tuple{Elems: elems}, nil
	case "union":
		alts, err := fromNodeList(n.Items)
		if err != nil {
			return nil, err
		}
		return types.Union{Alts: alts}, nil
	case "intersection":
		parts, err := fromNodeList(n.Items)
		if err != nil {
			return nil, err
		}
		return types.Intersection{Parts: parts}, nil
	case "type_lit":
		members, err := fromMemberNodes(n.Members)
		if err != nil {
			return nil, err
		}
		return types.TypeLit{Members: members}, nil
	case "interface":
		members, err := fromMemberNodes(n.Members)
		if err != nil {
			return nil, err
		}
		return types.Interface{Name: n.Name, Members: members}, nil
	case "this":
		return types.This{}, nil
	case "enum_variant":
		return types.EnumVariant{EnumName: n.EnumName, MemberName: n.MemberName}, nil
	case "param":
		p := types.Param{Name: n.Name}
		if n.Constraint != nil {
			c, err := fromNode(n.Constraint)
			if err != nil {
				return nil, err
			}
			p.Constraint = c
		}
		return p, nil
	default:
		return nil, fmt.Errorf("wire: unknown type node kind %q", n.Kind)
	}
}

func fromNodeList(nodes []*typeNode) ([]types.Type, error) {
	out := make([]types.Type, 0, len(nodes))
	for _, n := range nodes {
		t, err := fromNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func fromMemberNodes(nodes []*typeNode) ([]types.TypeElement, error) {
	out := make([]types.TypeElement, 0, len(nodes))
	for _, n := range nodes {
		propType, err := fromNode(n.PropType)
		if err != nil {
			return nil, err
		}
		out = append(out, types.TypeElement{
			ElemKind: types.ElemProperty,
			Key:      types.Key{KeyKind: types.KeyIdent, Ident: n.Name},
			Optional: n.Optional,
			PropType: propType,
		})
	}
	return out, nil
}

// --- AssignError wire form ---

type errorNode struct {
	Kind    string       `json:"kind"`
	Message string       `json:"message"`
	Causes  []*errorNode `json:"causes,omitempty"`
}

// EncodeError serializes an AssignError tree to JSON. The wire form keeps
// only each node's taxonomy kind and rendered message, not its operand
// Type values — enough for a remote caller (or the cache) to know what
// happened without re-deriving the full Type algebra over the wire.
func EncodeError(err error) (string, error) {
	if err == nil {
		return "", nil
	}
	node := toErrorNode(err)
	b, marshalErr := json.Marshal(node)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(b), nil
}

// DecodeError parses a JSON error tree back into a *ReconstitutedError
// (an AssignError-taxonomy-shaped but opaque error, sufficient for a
// cache or RPC client to know whether and why a check failed).
func DecodeError(data string) (error, error) {
	if data == "" {
		return nil, nil
	}
	var node errorNode
	if err := json.Unmarshal([]byte(data), &node); err != nil {
		return nil, err
	}
	return fromErrorNode(&node), nil
}

func toErrorNode(err error) *errorNode {
	n := &errorNode{Message: err.Error()}
	switch e := err.(type) {
	case *types.AssignFailed:
		n.Kind = "AssignFailed"
		for _, c := range e.Causes {
			n.Causes = append(n.Causes, toErrorNode(c))
		}
	case *types.UnionError:
		n.Kind = "UnionError"
		for _, c := range e.Errors {
			n.Causes = append(n.Causes, toErrorNode(c))
		}
	case *types.IntersectionError:
		n.Kind = "IntersectionError"
		n.Causes = []*errorNode{toErrorNode(e.Cause)}
	case *types.MissingFields:
		n.Kind = "MissingFields"
	case *types.ConstructorRequired:
		n.Kind = "ConstructorRequired"
	case *types.AssignedWrapperToPrimitive:
		n.Kind = "AssignedWrapperToPrimitive"
	case *types.CannotAssignToThis:
		n.Kind = "CannotAssignToThis"
	case *types.Errors:
		n.Kind = "Errors"
		for _, c := range e.Errs {
			n.Causes = append(n.Causes, toErrorNode(c))
		}
	case *types.Unimplemented:
		n.Kind = "Unimplemented"
	default:
		n.Kind = "Unknown"
	}
	return n
}

// ReconstitutedError is what a wire-decoded AssignError tree becomes on
// the receiving side: the taxonomy kind and message survive the wire
// crossing, but the original Type operands do not — only opaque strings
// move across the proto boundary.
type ReconstitutedError struct {
	TaxonomyKind string
	Message      string
	Causes       []*ReconstitutedError
}

func (e *ReconstitutedError) Error() string { return e.Message }

func fromErrorNode(n *errorNode) *ReconstitutedError {
	r := &ReconstitutedError{TaxonomyKind: n.Kind, Message: n.Message}
	for _, c := range n.Causes {
		r.Causes = append(r.Causes, fromErrorNode(c))
	}
	return r
}
