package inference

import (
	"context"

	"github.com/echoface/esmapper/mapping"
	"github.com/echoface/esmapper/source"
)

/*inference builds field mappings from example data. The registry talks
to it through the Builder interface only; shapes already recorded in the
key view always win over fresh inference, newly observed shapes come
back as updates for the registry to commit.*/

type (
	// BuildInput inputs for a synchronous single-document build
	BuildInput struct {
		Doc       map[string]interface{}
		Settings  *mapping.Settings
		Overrides []mapping.FieldOverride
		IndexName string
		Log       mapping.KeyView
	}

	// CollectionInput inputs for a fetch-and-sample build
	CollectionInput struct {
		Settings  *mapping.Settings
		Config    source.Config
		IndexName string
		Log       mapping.KeyView
	}

	Builder interface {
		FromDocument(in BuildInput) (*mapping.Mapping, mapping.KeyUpdates, error)
		FromCollection(ctx context.Context, in CollectionInput) (*mapping.Mapping, mapping.KeyUpdates, error)
	}
)
