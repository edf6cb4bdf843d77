package mapping

import (
	"encoding/json"
)

// Dynamic is the two-state dynamic-mapping flag. It only becomes the
// elasticsearch wire strings "true"/"false" when marshaled.
type Dynamic int

const (
	DynamicFalse Dynamic = iota
	DynamicTrue
)

func DynamicOf(status bool) Dynamic {
	if status {
		return DynamicTrue
	}
	return DynamicFalse
}

func (d Dynamic) Bool() bool {
	return d == DynamicTrue
}

// WireString elasticsearch expects the flag stringified, not a json bool
func (d Dynamic) WireString() string {
	if d == DynamicTrue {
		return "true"
	}
	return "false"
}

func (d Dynamic) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.WireString())
}

func (d *Dynamic) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = DynamicOf(s == "true")
	return nil
}

type (
	// Property a single field mapping node; object/nested fields carry
	// child Properties instead of (or in addition to) a Type.
	Property struct {
		Type           string               `json:"type,omitempty"`
		Format         string               `json:"format,omitempty"`
		Analyzer       string               `json:"analyzer,omitempty"`
		SearchAnalyzer string               `json:"search_analyzer,omitempty"`
		Index          *bool                `json:"index,omitempty"`
		Properties     map[string]*Property `json:"properties,omitempty"`
	}

	// Mapping a per-type field-shape definition owned by one index
	Mapping struct {
		Dynamic    Dynamic              `json:"dynamic"`
		Properties map[string]*Property `json:"properties,omitempty"`
	}
)

func NewMapping() *Mapping {
	return &Mapping{
		Dynamic:    DynamicTrue,
		Properties: make(map[string]*Property),
	}
}

func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Index != nil {
		v := *p.Index
		cp.Index = &v
	}
	if p.Properties != nil {
		cp.Properties = make(map[string]*Property, len(p.Properties))
		for name, child := range p.Properties {
			cp.Properties[name] = child.Clone()
		}
	}
	return &cp
}

// SameShape reports whether two properties describe the same field shape.
// Only type-determining attributes participate; analyzers do not.
func (p *Property) SameShape(other *Property) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Type != other.Type || p.Format != other.Format {
		return false
	}
	if len(p.Properties) != len(other.Properties) {
		return false
	}
	for name, child := range p.Properties {
		oc, ok := other.Properties[name]
		if !ok || !child.SameShape(oc) {
			return false
		}
	}
	return true
}
