package esmapper

import (
	"context"

	"github.com/echoface/esmapper/inference"
	"github.com/echoface/esmapper/mapping"
	"github.com/echoface/esmapper/source"
	"github.com/echoface/esmapper/util"
)

// MapFromDocument infers a mapping from doc and installs it under
// indexName/typeName, overwriting any prior mapping for that type. An
// unknown index is created implicitly from the current defaults.
func (r *Registry) MapFromDocument(indexName, typeName string,
	doc map[string]interface{}, overrides []mapping.FieldOverride) (*mapping.Mapping, error) {

	if len(indexName) == 0 {
		return nil, newError(ErrInvalidArgument, "index name can't be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.indices[indexName]
	if !ok {
		idx = r.createIndexLocked(indexName)
	}
	m, updates, err := r.builder.FromDocument(inference.BuildInput{
		Doc:       doc,
		Settings:  idx.Settings,
		Overrides: overrides,
		IndexName: indexName,
		Log:       r.keyLog,
	})
	if err != nil {
		return nil, err
	}
	r.keyLog.commit(updates)
	r.installLocked(idx, typeName, m)
	return m, nil
}

// MapFromCollection samples documents from the configured source on a
// background goroutine, infers a mapping and installs it like
// MapFromDocument does. The returned task completes exactly once; the
// ctx given here cancels the underlying fetch.
func (r *Registry) MapFromCollection(ctx context.Context,
	indexName, typeName string, cfg source.Config) *MappingTask {

	task := newMappingTask(indexName, typeName)
	if len(indexName) == 0 {
		task.complete(nil, newError(ErrInvalidArgument, "index name can't be empty"))
		return task
	}

	r.mu.Lock()
	idx, ok := r.indices[indexName]
	if !ok {
		idx = r.createIndexLocked(indexName)
	}
	// freeze builder inputs so the fetch never races registry writers
	settings := idx.Settings.Snapshot()
	view := r.keyLog.snapshot()
	builder := r.builder
	r.mu.Unlock()

	go func() {
		m, updates, err := builder.FromCollection(ctx, inference.CollectionInput{
			Settings:  settings,
			Config:    cfg,
			IndexName: indexName,
			Log:       view,
		})
		if err != nil {
			LogIfErr(err, "collection mapping %s failed for %s/%s", task.ID, indexName, typeName)
			task.complete(nil, err)
			return
		}

		r.mu.Lock()
		r.keyLog.commit(updates)
		// the record may have been replaced or cleared during the fetch
		if cur, ok := r.indices[indexName]; ok {
			r.installLocked(cur, typeName, m)
		}
		r.mu.Unlock()
		task.complete(m, nil)
	}()
	return task
}

// installLocked a mapping installed while index-level control is active
// inherits the index's current dynamic status.
func (r *Registry) installLocked(idx *Index, typeName string, m *mapping.Mapping) {
	if idx.Settings.MapperDynamic != nil {
		m.Dynamic = mapping.DynamicOf(*idx.Settings.MapperDynamic)
	}
	idx.Mappings[typeName] = m
	LogDebug("installed mapping %s/%s: %s", idx.Name, typeName, util.JSONString(m))
}
