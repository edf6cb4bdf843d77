package mapping

import "encoding/json"

type (
	// AnalysisConfig additive analysis configuration: filter/analyzer
	// definitions keyed by name. Definitions are opaque and end up in
	// the settings body untouched.
	AnalysisConfig struct {
		Filters   map[string]interface{} `json:"filter,omitempty"`
		Analyzers map[string]interface{} `json:"analyzer,omitempty"`
	}

	// Settings an index settings body: the analysis section plus the
	// optional index.mapper.dynamic switch. Presence of MapperDynamic is
	// the single source of truth for index-level dynamic-mapping control.
	Settings struct {
		Analysis      AnalysisConfig
		MapperDynamic *bool
	}
)

// DefaultAnalysis the built-in template every registry starts from
func DefaultAnalysis() AnalysisConfig {
	return AnalysisConfig{
		Filters: map[string]interface{}{
			"edge_ngram": map[string]interface{}{
				"type":     "edge_ngram",
				"min_gram": 1,
				"max_gram": 20,
			},
		},
		Analyzers: map[string]interface{}{
			"default_index": map[string]interface{}{
				"type":      "custom",
				"tokenizer": "standard",
				"filter":    []string{"lowercase", "edge_ngram"},
			},
			"default_search": map[string]interface{}{
				"type":      "custom",
				"tokenizer": "standard",
				"filter":    []string{"lowercase"},
			},
		},
	}
}

// Merge adds entries missing from the receiver; already registered
// names keep their first definition, collisions are skipped silently.
func (c *AnalysisConfig) Merge(other AnalysisConfig) {
	if c.Filters == nil {
		c.Filters = make(map[string]interface{})
	}
	if c.Analyzers == nil {
		c.Analyzers = make(map[string]interface{})
	}
	for name, def := range other.Filters {
		if _, ok := c.Filters[name]; !ok {
			c.Filters[name] = def
		}
	}
	for name, def := range other.Analyzers {
		if _, ok := c.Analyzers[name]; !ok {
			c.Analyzers[name] = def
		}
	}
}

func (c AnalysisConfig) Clone() AnalysisConfig {
	cp := AnalysisConfig{
		Filters:   make(map[string]interface{}, len(c.Filters)),
		Analyzers: make(map[string]interface{}, len(c.Analyzers)),
	}
	for name, def := range c.Filters {
		cp.Filters[name] = def
	}
	for name, def := range c.Analyzers {
		cp.Analyzers[name] = def
	}
	return cp
}

// Snapshot copies the settings; definitions stay shared, membership and
// the dynamic switch become independent of the original.
func (s *Settings) Snapshot() *Settings {
	cp := &Settings{Analysis: s.Analysis.Clone()}
	if s.MapperDynamic != nil {
		v := *s.MapperDynamic
		cp.MapperDynamic = &v
	}
	return cp
}

func (s *Settings) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{
		"analysis": s.Analysis,
	}
	if s.MapperDynamic != nil {
		body["index.mapper.dynamic"] = *s.MapperDynamic
	}
	return json.Marshal(body)
}
