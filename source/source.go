package source

import (
	"context"
	"encoding/json"
	"fmt"
)

/*source samplers fetch example documents from an external store so a
mapping can be inferred from live data instead of a hand-picked doc*/

const DefaultSampleSize = 10

var (
	factory map[string]Builder
)

type (
	// Config source location and sampling parameters for one fetch
	Config struct {
		// Source sampler name registered in the factory, eg "sqlite"
		Source string `json:"source"`
		// DSN connection string understood by the chosen sampler
		DSN string `json:"dsn"`
		// Collection table holding the documents to sample
		Collection string `json:"collection"`
		// SampleSize max documents fetched; DefaultSampleSize when <= 0
		SampleSize int `json:"sample_size"`
	}

	Sampler interface {
		Sample(ctx context.Context, cfg Config) ([]map[string]interface{}, error)
	}

	Builder func() Sampler
)

func init() {
	factory = make(map[string]Builder)

	factory["sqlite"] = NewSQLiteSampler
	factory["postgres"] = NewPostgresSampler
}

// Register add a custom sampler; overrides any builtin of the same name
func Register(name string, builder Builder) {
	factory[name] = builder
}

func Open(cfg Config) (Sampler, error) {
	builder, ok := factory[cfg.Source]
	if !ok {
		return nil, fmt.Errorf("no sampler registered for source %q", cfg.Source)
	}
	return builder(), nil
}

func (c Config) limit() int {
	if c.SampleSize <= 0 {
		return DefaultSampleSize
	}
	return c.SampleSize
}

// rowDoc turns one row into a document. A single-column row whose value
// is a json object is treated as the document itself, so tables storing
// whole documents in one json column sample naturally.
func rowDoc(cols []string, values []interface{}) map[string]interface{} {
	if len(cols) == 1 {
		if obj, ok := asJSONObject(values[0]); ok {
			return obj
		}
	}
	doc := make(map[string]interface{}, len(cols))
	for i, col := range cols {
		doc[col] = normalizeValue(values[i])
	}
	return doc
}

func asJSONObject(v interface{}) (map[string]interface{}, bool) {
	var raw []byte
	switch t := v.(type) {
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		return nil, false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func normalizeValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
