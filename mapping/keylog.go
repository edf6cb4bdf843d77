package mapping

type (
	// KeyView read-only lookup over previously inferred field shapes.
	// Builders consult it to keep repeated inference consistent; they
	// never mutate it directly.
	KeyView interface {
		Lookup(key string) (*Property, bool)
	}

	// KeyUpdates newly observed field shapes a builder wants recorded,
	// keyed by dot-joined field path. The registry commits them after a
	// successful build.
	KeyUpdates map[string]*Property
)

// FieldOverride pins the mapping of one field path, bypassing inference.
type FieldOverride struct {
	Field   string   `json:"field"`
	Mapping Property `json:"mapping"`
}
