// Package fixture is the smallest possible stand-in for a real elaborator:
// it decodes a YAML document into types.Type values directly, with every
// reference already spelled out in place — no name resolution, no alias
// expansion. It exists only to feed cmd/shapec and the test suite;
// internal/types never imports it.
//
// Decoding goes through gopkg.in/yaml.v3 into a generic map, then walks
// that map by a "kind" discriminator field to build the matching
// types.Type value.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shapelang/shapec/internal/types"
)

// Case is one (left, right) assignability pair declared by a fixture
// file, plus a human-readable name for test/CLI reporting.
type Case struct {
	Name            string
	Left            types.Type
	Right           types.Type
	ExpectOK        bool
	StrictNullCheck bool
}

// File is the top-level shape of a fixture YAML document.
type File struct {
	Cases []Case
}

type rawFile struct {
	Cases []rawCase `yaml:"cases"`
}

type rawCase struct {
	Name            string         `yaml:"name"`
	Left            map[string]any `yaml:"left"`
	Right           map[string]any `yaml:"right"`
	Expect          string         `yaml:"expect"` // "ok" or "fail"
	StrictNullCheck bool           `yaml:"strict_null_checks"`
}

// Load reads and decodes a fixture file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a fixture document from raw YAML bytes.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixture: decode: %w", err)
	}
	f := &File{Cases: make([]Case, 0, len(raw.Cases))}
	for i, rc := range raw.Cases {
		left, err := buildType(rc.Left)
		if err != nil {
			return nil, fmt.Errorf("fixture: case %d (%s) left: %w", i, rc.Name, err)
		}
		right, err := buildType(rc.Right)
		if err != nil {
			return nil, fmt.Errorf("fixture: case %d (%s) right: %w", i, rc.Name, err)
		}
		f.Cases = append(f.Cases, Case{
			Name:            rc.Name,
			Left:            left,
			Right:           right,
			ExpectOK:        rc.Expect != "fail",
			StrictNullCheck: rc.StrictNullCheck,
		})
	}
	return f, nil
}

var keywordByName = map[string]types.KeywordKind{
	"any": types.KwAny, "unknown": types.KwUnknown, "string": types.KwString,
	"number": types.KwNumber, "boolean": types.KwBoolean, "object": types.KwObject,
	"void": types.KwVoid, "undefined": types.KwUndefined, "null": types.KwNull,
	"never": types.KwNever, "symbol": types.KwSymbol, "bigint": types.KwBigint,
}

// buildType walks one YAML node, tagged by its "kind" field, into a
// types.Type. Every case of the algebra the fixture format can express
// has a branch here; anything else is a fixture authoring error, returned
// as an error rather than guessed at.
func buildType(node map[string]any) (types.Type, error) {
	if node == nil {
		return nil, fmt.Errorf("missing type node")
	}
	kindVal, _ := node["kind"].(string)
	switch kindVal {
	case "keyword":
		name, _ := node["name"].(string)
		kw, ok := keywordByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown keyword %q", name)
		}
		return types.Keyword{Kw: kw}, nil

	case "literal":
		switch v := node["value"].(type) {
		case string:
			return types.Literal{LitKind: types.LitString, Str: v}, nil
		case int:
			return types.Literal{LitKind: types.LitNumber, Num: float64(v)}, nil
		case float64:
			return types.Literal{LitKind: types.LitNumber, Num: v}, nil
		case bool:
			return types.Literal{LitKind: types.LitBoolean, Bool: v}, nil
		default:
			return nil, fmt.Errorf("unsupported literal value %#v", v)
		}

	case "array":
		elemNode, _ := node["elem"].(map[string]any)
		elem, err := buildType(elemNode)
		if err != nil {
			return nil, err
		}
		return types.Array{Elem: elem}, nil

	case "tuple":
		elems, err := buildTypeList(node["elems"])
		if err != nil {
			return nil, err
		}
		return types.Tuple{Elems: elems}, nil

	case "union":
		alts, err := buildTypeList(node["alts"])
		if err != nil {
			return nil, err
		}
		return types.Union{Alts: alts}, nil

	case "intersection":
		parts, err := buildTypeList(node["parts"])
		if err != nil {
			return nil, err
		}
		return types.Intersection{Parts: parts}, nil

	case "type_lit":
		members, err := buildMembers(node["members"])
		if err != nil {
			return nil, err
		}
		return types.TypeLit{Members: members}, nil

	case "interface":
		name, _ := node["name"].(string)
		members, err := buildMembers(node["members"])
		if err != nil {
			return nil, err
		}
		extends, err := buildTypeList(node["extends"])
		if err != nil {
			return nil, err
		}
		return types.Interface{Name: name, Members: members, Extends: extends}, nil

	case "this":
		return types.This{}, nil

	default:
		return nil, fmt.Errorf("unknown type kind %q", kindVal)
	}
}

func buildTypeList(raw any) ([]types.Type, error) {
	list, _ := raw.([]any)
	out := make([]types.Type, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected a type node, got %#v", item)
		}
		t, err := buildType(m)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func buildMembers(raw any) ([]types.TypeElement, error) {
	list, _ := raw.([]any)
	out := make([]types.TypeElement, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected a member node, got %#v", item)
		}
		name, _ := m["name"].(string)
		propNode, _ := m["type"].(map[string]any)
		propType, err := buildType(propNode)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", name, err)
		}
		optional, _ := m["optional"].(bool)
		out = append(out, types.TypeElement{
			ElemKind: types.ElemProperty,
			Key:      types.Key{KeyKind: types.KeyIdent, Ident: name},
			Optional: optional,
			PropType: propType,
		})
	}
	return out, nil
}
