package inference

import (
	"context"
	"fmt"
	"time"

	"github.com/echoface/esmapper/mapping"
	"github.com/echoface/esmapper/source"
	"github.com/echoface/esmapper/util"
)

type (
	// DateLayout pairs a go time layout with the format string written
	// into the resulting date mapping.
	DateLayout struct {
		Layout string
		Wire   string
	}

	InferrerOpt func(b *DocumentInferrer)

	// DocumentInferrer the default Builder: walks plain json-style
	// documents and infers elasticsearch field types.
	DocumentInferrer struct {
		dateLayouts    []DateLayout
		indexAnalyzer  string
		searchAnalyzer string
	}
)

var defaultDateLayouts = []DateLayout{
	{Layout: time.RFC3339, Wire: "strict_date_optional_time"},
	{Layout: "2006-01-02 15:04:05", Wire: "yyyy-MM-dd HH:mm:ss"},
	{Layout: "2006-01-02", Wire: "yyyy-MM-dd"},
}

// WithDateLayouts replace the layouts tried for date-string detection
func WithDateLayouts(layouts ...DateLayout) InferrerOpt {
	return func(b *DocumentInferrer) {
		b.dateLayouts = layouts
	}
}

// WithTextAnalyzers set the analyzer names attached to text fields;
// each is only attached when the index settings actually define it.
func WithTextAnalyzers(index, search string) InferrerOpt {
	return func(b *DocumentInferrer) {
		b.indexAnalyzer = index
		b.searchAnalyzer = search
	}
}

func NewDocumentInferrer(opts ...InferrerOpt) *DocumentInferrer {
	b := &DocumentInferrer{
		dateLayouts:    defaultDateLayouts,
		indexAnalyzer:  "default_index",
		searchAnalyzer: "default_search",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *DocumentInferrer) FromDocument(in BuildInput) (*mapping.Mapping, mapping.KeyUpdates, error) {
	w := b.newWalker(in.Settings, in.Overrides, in.Log)
	m := mapping.NewMapping()
	if err := w.mergeDoc(m, in.Doc); err != nil {
		return nil, nil, err
	}
	return m, w.updates, nil
}

func (b *DocumentInferrer) FromCollection(ctx context.Context, in CollectionInput) (*mapping.Mapping, mapping.KeyUpdates, error) {
	sampler, err := source.Open(in.Config)
	if err != nil {
		return nil, nil, err
	}
	docs, err := sampler.Sample(ctx, in.Config)
	if err != nil {
		return nil, nil, err
	}

	w := b.newWalker(in.Settings, nil, in.Log)
	m := mapping.NewMapping()
	for _, doc := range docs {
		if err = w.mergeDoc(m, doc); err != nil {
			return nil, nil, err
		}
	}
	return m, w.updates, nil
}

type walker struct {
	b         *DocumentInferrer
	overrides map[string]*mapping.Property
	log       mapping.KeyView
	updates   mapping.KeyUpdates
	analyzers map[string]interface{}
}

func (b *DocumentInferrer) newWalker(settings *mapping.Settings,
	overrides []mapping.FieldOverride, log mapping.KeyView) *walker {

	w := &walker{
		b:         b,
		overrides: make(map[string]*mapping.Property, len(overrides)),
		log:       log,
		updates:   make(mapping.KeyUpdates),
	}
	for i := range overrides {
		w.overrides[overrides[i].Field] = &overrides[i].Mapping
	}
	if settings != nil {
		w.analyzers = settings.Analysis.Analyzers
	}
	return w
}

// mergeDoc adds doc's fields to m; fields m already holds keep their
// first inferred shape.
func (w *walker) mergeDoc(m *mapping.Mapping, doc map[string]interface{}) error {
	for name, v := range doc {
		if _, ok := m.Properties[name]; ok {
			continue
		}
		prop, err := w.field(name, v)
		if err != nil {
			return err
		}
		if prop != nil {
			m.Properties[name] = prop
		}
	}
	return nil
}

func (w *walker) field(path string, v interface{}) (*mapping.Property, error) {
	if ov, ok := w.overrides[path]; ok {
		p := ov.Clone()
		w.updates[path] = p
		return p, nil
	}
	if prev, ok := w.lookup(path); ok {
		return prev.Clone(), nil
	}
	p, err := w.infer(path, v)
	if err != nil {
		return nil, err
	}
	if p != nil {
		w.updates[path] = p
	}
	return p, nil
}

// lookup consults pending updates before the committed key view so one
// build stays self-consistent as well.
func (w *walker) lookup(path string) (*mapping.Property, bool) {
	if p, ok := w.updates[path]; ok {
		return p, true
	}
	if w.log == nil {
		return nil, false
	}
	return w.log.Lookup(path)
}

func (w *walker) infer(path string, v interface{}) (*mapping.Property, error) {
	if util.NilInterface(v) {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		if p, ok := w.inferDate(t); ok {
			return p, nil
		}
		return w.textProperty(), nil
	case bool:
		return &mapping.Property{Type: "boolean"}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return &mapping.Property{Type: "long"}, nil
	case float64:
		// json numbers decode as float64; keep integral values as long
		if t == float64(int64(t)) {
			return &mapping.Property{Type: "long"}, nil
		}
		return &mapping.Property{Type: "double"}, nil
	case float32:
		return &mapping.Property{Type: "double"}, nil
	case time.Time:
		return &mapping.Property{Type: "date"}, nil
	case map[string]interface{}:
		return w.inferObject(path, t)
	case []interface{}:
		return w.inferArray(path, t)
	}
	return nil, fmt.Errorf("can't infer mapping for field %s from %T", path, v)
}

func (w *walker) inferObject(path string, obj map[string]interface{}) (*mapping.Property, error) {
	children := make(map[string]*mapping.Property, len(obj))
	for name, cv := range obj {
		cp, err := w.field(path+"."+name, cv)
		if err != nil {
			return nil, err
		}
		if cp != nil {
			children[name] = cp
		}
	}
	return &mapping.Property{Properties: children}, nil
}

// inferArray an array of objects maps to nested; scalar arrays map to
// the element type, elasticsearch arrays carry no type of their own.
// Classification looks at the first non-nil element.
func (w *walker) inferArray(path string, arr []interface{}) (*mapping.Property, error) {
	first := -1
	for i, elem := range arr {
		if !util.NilInterface(elem) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, nil
	}
	if _, ok := arr[first].(map[string]interface{}); !ok {
		return w.infer(path, arr[first])
	}
	children := make(map[string]*mapping.Property)
	for _, elem := range arr {
		obj, ok := elem.(map[string]interface{})
		if !ok {
			continue
		}
		for name, cv := range obj {
			if _, ok = children[name]; ok {
				continue
			}
			cp, err := w.field(path+"."+name, cv)
			if err != nil {
				return nil, err
			}
			if cp != nil {
				children[name] = cp
			}
		}
	}
	return &mapping.Property{Type: "nested", Properties: children}, nil
}

func (w *walker) inferDate(s string) (*mapping.Property, bool) {
	for _, dl := range w.b.dateLayouts {
		if _, err := time.Parse(dl.Layout, s); err == nil {
			return &mapping.Property{Type: "date", Format: dl.Wire}, true
		}
	}
	return nil, false
}

func (w *walker) textProperty() *mapping.Property {
	p := &mapping.Property{Type: "text"}
	if _, ok := w.analyzers[w.b.indexAnalyzer]; ok {
		p.Analyzer = w.b.indexAnalyzer
	}
	if _, ok := w.analyzers[w.b.searchAnalyzer]; ok {
		p.SearchAnalyzer = w.b.searchAnalyzer
	}
	return p
}
