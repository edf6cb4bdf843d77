package esmapper

import (
	"github.com/echoface/esmapper/mapping"
)

// KeyLog records the last-known shape inferred for every field path the
// registry has seen. Builders read it through mapping.KeyView and hand
// back updates; only the registry commits them. Keys are bare dot-joined
// field paths, so consistency holds across types and indices alike.
type KeyLog struct {
	shapes map[string]*mapping.Property
}

func NewKeyLog() *KeyLog {
	return &KeyLog{shapes: make(map[string]*mapping.Property)}
}

func (l *KeyLog) Lookup(key string) (*mapping.Property, bool) {
	p, ok := l.shapes[key]
	return p, ok
}

func (l *KeyLog) Size() int {
	return len(l.shapes)
}

// commit first shape wins; a conflicting update for a known key is
// dropped with a log line, same rule as the analysis config merge.
func (l *KeyLog) commit(updates mapping.KeyUpdates) {
	for key, shape := range updates {
		if prev, ok := l.shapes[key]; ok {
			if !prev.SameShape(shape) {
				LogDebug("key log conflict on %s, keep first shape", key)
			}
			continue
		}
		l.shapes[key] = shape.Clone()
	}
}

// snapshot frozen copy handed to builders running off the lock
func (l *KeyLog) snapshot() mapping.KeyView {
	cp := make(map[string]*mapping.Property, len(l.shapes))
	for key, shape := range l.shapes {
		cp[key] = shape
	}
	return frozenKeys(cp)
}

func (l *KeyLog) reset() {
	l.shapes = make(map[string]*mapping.Property)
}

type frozenKeys map[string]*mapping.Property

func (f frozenKeys) Lookup(key string) (*mapping.Property, bool) {
	p, ok := f[key]
	return p, ok
}
