package scabi

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Definition is an already-parsed contract interface description.
type Definition struct {
	Name        string               `json:"name"`
	Constructor *EndpointDefinition  `json:"constructor,omitempty"`
	Endpoints   []EndpointDefinition `json:"endpoints"`
	Types       TypesDefinition      `json:"types"`
}

// EndpointDefinition describes one endpoint's ordered inputs and outputs.
type EndpointDefinition struct {
	Name            string                `json:"name"`
	Mutability      string                `json:"mutability,omitempty"`
	PayableInTokens []string              `json:"payableInTokens,omitempty"`
	Inputs          []ParameterDefinition `json:"inputs"`
	Outputs         []ParameterDefinition `json:"outputs"`
}

// ParameterDefinition is one endpoint input or output.
type ParameterDefinition struct {
	Name        string `json:"name,omitempty"`
	Type        string `json:"type"`
	MultiArg    bool   `json:"multi_arg,omitempty"`
	MultiResult bool   `json:"multi_result,omitempty"`
}

// FieldDefinition is a named, typed member of a struct or enum variant.
type FieldDefinition struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// StructDefinition lists a struct's fields in wire order.
type StructDefinition struct {
	Fields []FieldDefinition `json:"fields"`
}

// EnumVariantDefinition is one variant of an enum.
type EnumVariantDefinition struct {
	Name         string            `json:"name"`
	Discriminant uint8             `json:"discriminant"`
	Fields       []FieldDefinition `json:"fields,omitempty"`
}

// EnumDefinition lists an enum's variants.
type EnumDefinition struct {
	Variants []EnumVariantDefinition `json:"variants"`
}

// TypesDefinition holds the custom types of a contract, keyed by name.
type TypesDefinition struct {
	Structs map[string]StructDefinition
	Enums   map[string]EnumDefinition
}

// customTypeJSON is the shape of one entry of the "types" object.
type customTypeJSON struct {
	Type     string                  `json:"type"`
	Fields   []FieldDefinition       `json:"fields,omitempty"`
	Variants []EnumVariantDefinition `json:"variants,omitempty"`
}

// UnmarshalJSON splits the "types" object into structs and enums by their "type" tag.
func (t *TypesDefinition) UnmarshalJSON(data []byte) error {
	var raw map[string]customTypeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Structs = make(map[string]StructDefinition)
	t.Enums = make(map[string]EnumDefinition)
	for name, custom := range raw {
		switch custom.Type {
		case "struct":
			t.Structs[name] = StructDefinition{Fields: custom.Fields}
		case "enum", "explicit-enum":
			t.Enums[name] = EnumDefinition{Variants: custom.Variants}
		default:
			return fmt.Errorf("scabi: custom type %q has unsupported kind %q", name, custom.Type)
		}
	}
	return nil
}

// MarshalJSON writes structs and enums back into a single "types" object.
func (t TypesDefinition) MarshalJSON() ([]byte, error) {
	raw := make(map[string]customTypeJSON, len(t.Structs)+len(t.Enums))
	for name, s := range t.Structs {
		raw[name] = customTypeJSON{Type: "struct", Fields: s.Fields}
	}
	for name, e := range t.Enums {
		raw[name] = customTypeJSON{Type: "enum", Variants: e.Variants}
	}
	return json.Marshal(raw)
}

// Names returns every custom type name in sorted order.
func (t *TypesDefinition) Names() []string {
	names := make([]string, 0, len(t.Structs)+len(t.Enums))
	for name := range t.Structs {
		names = append(names, name)
	}
	for name := range t.Enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseDefinition parses a JSON contract interface description.
// This is a convenience; NewAbi consumes any *Definition however it was built.
func ParseDefinition(data []byte) (*Definition, error) {
	var definition Definition
	if err := json.Unmarshal(data, &definition); err != nil {
		return nil, fmt.Errorf("scabi: cannot parse definition: %w", err)
	}
	return &definition, nil
}

// MustParseDefinition is like ParseDefinition but panics on error.
func MustParseDefinition(data []byte) *Definition {
	definition, err := ParseDefinition(data)
	if err != nil {
		panic(err)
	}
	return definition
}
