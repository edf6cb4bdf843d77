package esmapper

import (
	"context"

	"github.com/google/uuid"

	"github.com/echoface/esmapper/mapping"
)

// MappingTask single-result handle for an in-flight collection mapping.
// It completes exactly once; Wait may be called from any number of
// goroutines.
type MappingTask struct {
	ID        string
	IndexName string
	TypeName  string

	done    chan struct{}
	mapping *mapping.Mapping
	err     error
}

func newMappingTask(indexName, typeName string) *MappingTask {
	return &MappingTask{
		ID:        uuid.NewString(),
		IndexName: indexName,
		TypeName:  typeName,
		done:      make(chan struct{}),
	}
}

func (t *MappingTask) complete(m *mapping.Mapping, err error) {
	t.mapping = m
	t.err = err
	close(t.done)
}

// Done closed when the task has completed
func (t *MappingTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until completion or ctx expiry. Giving up on Wait does
// not cancel the fetch; cancel the ctx passed to MapFromCollection.
func (t *MappingTask) Wait(ctx context.Context) (*mapping.Mapping, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return t.mapping, t.err
	}
}
