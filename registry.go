package esmapper

import (
	"encoding/json"
	"sync"

	"github.com/echoface/esmapper/inference"
	"github.com/echoface/esmapper/mapping"
)

type (
	// Index a named schema container: a settings snapshot taken at
	// creation time plus the type mappings built under it.
	Index struct {
		Name     string
		Settings *mapping.Settings
		Mappings map[string]*mapping.Mapping
	}

	RegistryOpt func(r *Registry)

	// Registry owns index/type/mapping lifecycle, the analysis defaults
	// and the key log. One registry is one isolated namespace; a process
	// can hold several.
	Registry struct {
		mu sync.RWMutex

		defaults *mapping.Settings
		template mapping.AnalysisConfig // construction-time defaults, restored by Clear
		indices  map[string]*Index
		keyLog   *KeyLog
		builder  inference.Builder
	}
)

// WithBuilder replace the default document inferrer
func WithBuilder(b inference.Builder) RegistryOpt {
	return func(r *Registry) {
		r.builder = b
	}
}

// WithDefaultAnalysis replace the built-in analysis template
func WithDefaultAnalysis(cfg mapping.AnalysisConfig) RegistryOpt {
	return func(r *Registry) {
		r.defaults = &mapping.Settings{Analysis: cfg.Clone()}
	}
}

func NewRegistry(opts ...RegistryOpt) *Registry {
	r := &Registry{
		defaults: &mapping.Settings{Analysis: mapping.DefaultAnalysis()},
		indices:  make(map[string]*Index),
		keyLog:   NewKeyLog(),
		builder:  inference.NewDocumentInferrer(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.template = r.defaults.Analysis.Clone()
	return r
}

// Configure merges filter/analyzer definitions into the defaults used by
// indices created after this call; already registered names keep their
// first definition. Existing indices keep their creation-time snapshot.
func (r *Registry) Configure(cfg mapping.AnalysisConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults.Analysis.Merge(cfg)
}

// DefaultConfig returns the live default settings, not a copy.
func (r *Registry) DefaultConfig() *mapping.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults
}

// CreateIndex registers an empty index under name with a snapshot of the
// current defaults. Registering an existing name replaces the record and
// its mappings are lost; prefer the implicit creation done by
// MapFromDocument when unsure.
func (r *Registry) CreateIndex(name string) error {
	if len(name) == 0 {
		return newError(ErrInvalidArgument, "index name can't be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createIndexLocked(name)
	return nil
}

func (r *Registry) createIndexLocked(name string) *Index {
	idx := &Index{
		Name:     name,
		Settings: r.defaults.Snapshot(),
		Mappings: make(map[string]*mapping.Mapping),
	}
	r.indices[name] = idx
	return idx
}

func (r *Registry) GetIndex(name string) (*Index, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.indices[name]
	return idx, ok
}

func (r *Registry) IndexCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.indices)
}

func (r *Registry) GetMappings(name string) (map[string]*mapping.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.indices[name]
	if !ok {
		return nil, newError(ErrNotFound, "index %s not registered", name)
	}
	return idx.Mappings, nil
}

func (r *Registry) GetSingleMapping(name, typeName string) (*mapping.Mapping, bool, error) {
	mappings, err := r.GetMappings(name)
	if err != nil {
		return nil, false, err
	}
	m, ok := mappings[typeName]
	return m, ok, nil
}

// KeyLogSize number of field paths the registry has recorded shapes for
func (r *Registry) KeyLogSize() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keyLog.Size()
}

// Clear resets indices, analysis defaults and the key log to the state
// the registry was constructed with. Meant for test isolation and
// re-initialization.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indices = make(map[string]*Index)
	r.defaults = &mapping.Settings{Analysis: r.template.Clone()}
	r.keyLog.reset()
}

// EnableIndexLevelDynamicMappings switches the index to index-level
// dynamic-mapping control. Enabling an already enabled index keeps the
// existing status untouched. Status defaults to false when omitted.
func (r *Registry) EnableIndexLevelDynamicMappings(name string, status ...bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.indices[name]
	if !ok {
		return newError(ErrNotFound, "index %s not registered", name)
	}
	if idx.Settings.MapperDynamic != nil {
		return nil
	}
	v := len(status) > 0 && status[0]
	idx.Settings.MapperDynamic = &v
	return nil
}

// DisableIndexLevelDynamicMappings reverts control to per-type; no-op
// when index-level control was never enabled.
func (r *Registry) DisableIndexLevelDynamicMappings(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.indices[name]
	if !ok {
		return newError(ErrNotFound, "index %s not registered", name)
	}
	idx.Settings.MapperDynamic = nil
	return nil
}

// DynamicMapping sets the index-level dynamic status and cascades it to
// every mapping currently registered under the index. Valid only while
// index-level control is enabled.
func (r *Registry) DynamicMapping(name string, status bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.indices[name]
	if !ok {
		return newError(ErrNotFound, "index %s not registered", name)
	}
	if idx.Settings.MapperDynamic == nil {
		return newError(ErrInvalidState,
			"index-level dynamic mappings not enabled on %s", name)
	}
	*idx.Settings.MapperDynamic = status
	for _, m := range idx.Mappings {
		m.Dynamic = mapping.DynamicOf(status)
	}
	return nil
}

// TypeDynamicMapping sets the dynamic flag of one type mapping. Valid
// only while index-level control is off; disable it first otherwise.
func (r *Registry) TypeDynamicMapping(name, typeName string, status bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.indices[name]
	if !ok {
		return newError(ErrNotFound, "index %s not registered", name)
	}
	m, ok := idx.Mappings[typeName]
	if !ok {
		return newError(ErrNotFound, "type %s not registered on index %s", typeName, name)
	}
	if idx.Settings.MapperDynamic != nil {
		return newError(ErrInvalidState,
			"index-level dynamic mappings active on %s, disable first", name)
	}
	m.Dynamic = mapping.DynamicOf(status)
	return nil
}

// MarshalJSON emits the create-index body shape: settings plus mappings.
func (idx *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"settings": idx.Settings,
		"mappings": idx.Mappings,
	})
}
