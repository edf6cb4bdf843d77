package inference

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/echoface/esmapper/mapping"
)

func buildOne(t *testing.T, doc map[string]interface{}, in BuildInput) (*mapping.Mapping, mapping.KeyUpdates) {
	t.Helper()
	in.Doc = doc
	m, updates, err := NewDocumentInferrer().FromDocument(in)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	return m, updates
}

func TestInferScalarTypes(t *testing.T) {
	convey.Convey("test scalar inference", t, func() {
		doc := map[string]interface{}{
			"title":   "Widget",
			"active":  true,
			"stock":   7,
			"count":   float64(12), // json numbers arrive as float64
			"price":   9.99,
			"created": time.Now(),
			"missing": nil,
		}
		m, updates := buildOne(t, doc, BuildInput{})

		convey.So(m.Properties["title"].Type, convey.ShouldEqual, "text")
		convey.So(m.Properties["active"].Type, convey.ShouldEqual, "boolean")
		convey.So(m.Properties["stock"].Type, convey.ShouldEqual, "long")
		convey.So(m.Properties["count"].Type, convey.ShouldEqual, "long")
		convey.So(m.Properties["price"].Type, convey.ShouldEqual, "double")
		convey.So(m.Properties["created"].Type, convey.ShouldEqual, "date")

		convey.So(m.Properties, convey.ShouldNotContainKey, "missing")
		convey.So(updates, convey.ShouldNotContainKey, "missing")
		convey.So(updates, convey.ShouldContainKey, "title")
	})
}

func TestInferDateStrings(t *testing.T) {
	convey.Convey("test date string detection", t, func() {
		doc := map[string]interface{}{
			"a": "2024-03-05",
			"b": "2024-03-05 12:30:00",
			"c": "2024-03-05T12:30:00Z",
			"d": "not a date at all",
		}
		m, _ := buildOne(t, doc, BuildInput{})

		convey.So(m.Properties["a"].Type, convey.ShouldEqual, "date")
		convey.So(m.Properties["a"].Format, convey.ShouldEqual, "yyyy-MM-dd")
		convey.So(m.Properties["b"].Format, convey.ShouldEqual, "yyyy-MM-dd HH:mm:ss")
		convey.So(m.Properties["c"].Format, convey.ShouldEqual, "strict_date_optional_time")
		convey.So(m.Properties["d"].Type, convey.ShouldEqual, "text")
	})
}

func TestInferObjectsAndArrays(t *testing.T) {
	convey.Convey("test object and array inference", t, func() {
		doc := map[string]interface{}{
			"vendor": map[string]interface{}{
				"name": "Acme",
				"rank": 3,
			},
			"tags":     []interface{}{"a", "b"},
			"variants": []interface{}{
				map[string]interface{}{"sku": "x-1"},
				map[string]interface{}{"sku": "x-2", "stock": 5},
			},
			"empty": []interface{}{},
		}
		m, updates := buildOne(t, doc, BuildInput{})

		vendor := m.Properties["vendor"]
		convey.So(vendor.Type, convey.ShouldBeEmpty)
		convey.So(vendor.Properties["name"].Type, convey.ShouldEqual, "text")
		convey.So(vendor.Properties["rank"].Type, convey.ShouldEqual, "long")

		convey.So(m.Properties["tags"].Type, convey.ShouldEqual, "text")

		variants := m.Properties["variants"]
		convey.So(variants.Type, convey.ShouldEqual, "nested")
		convey.So(variants.Properties["sku"].Type, convey.ShouldEqual, "text")
		convey.So(variants.Properties["stock"].Type, convey.ShouldEqual, "long")

		convey.So(m.Properties, convey.ShouldNotContainKey, "empty")

		// nested paths recorded dot-joined
		convey.So(updates, convey.ShouldContainKey, "vendor.name")
		convey.So(updates, convey.ShouldContainKey, "variants.sku")
	})

	convey.Convey("leading nils don't decide the array kind", t, func() {
		doc := map[string]interface{}{
			"variants": []interface{}{nil, map[string]interface{}{"sku": "x-1"}},
			"tags":     []interface{}{nil, "red"},
			"blank":    []interface{}{nil, nil},
		}
		m, _ := buildOne(t, doc, BuildInput{})

		convey.So(m.Properties["variants"].Type, convey.ShouldEqual, "nested")
		convey.So(m.Properties["variants"].Properties["sku"].Type, convey.ShouldEqual, "text")
		convey.So(m.Properties["tags"].Type, convey.ShouldEqual, "text")
		convey.So(m.Properties, convey.ShouldNotContainKey, "blank")
	})
}

func TestInferUnsupportedValue(t *testing.T) {
	convey.Convey("test unsupported value", t, func() {
		_, _, err := NewDocumentInferrer().FromDocument(BuildInput{
			Doc: map[string]interface{}{"ch": make(chan int)},
		})
		convey.So(err, convey.ShouldNotBeNil)

		convey.Convey("go array values error instead of panicking", func() {
			var m *mapping.Mapping
			build := func() {
				m, _, err = NewDocumentInferrer().FromDocument(BuildInput{
					Doc: map[string]interface{}{"a": [2]int{1, 2}},
				})
			}
			convey.So(build, convey.ShouldNotPanic)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(m, convey.ShouldBeNil)
		})
	})
}

func TestAnalyzerAttachment(t *testing.T) {
	convey.Convey("test analyzer attachment", t, func() {
		doc := map[string]interface{}{"title": "Widget"}

		convey.Convey("attached when the settings define them", func() {
			settings := &mapping.Settings{Analysis: mapping.DefaultAnalysis()}
			m, _ := buildOne(t, doc, BuildInput{Settings: settings})
			convey.So(m.Properties["title"].Analyzer, convey.ShouldEqual, "default_index")
			convey.So(m.Properties["title"].SearchAnalyzer, convey.ShouldEqual, "default_search")
		})

		convey.Convey("skipped when the settings lack them", func() {
			m, _ := buildOne(t, doc, BuildInput{Settings: &mapping.Settings{}})
			convey.So(m.Properties["title"].Analyzer, convey.ShouldBeEmpty)
		})

		convey.Convey("custom analyzer names", func() {
			settings := &mapping.Settings{Analysis: mapping.AnalysisConfig{
				Analyzers: map[string]interface{}{"ru": map[string]interface{}{}},
			}}
			b := NewDocumentInferrer(WithTextAnalyzers("ru", "ru_search"))
			m, _, err := b.FromDocument(BuildInput{Doc: doc, Settings: settings})
			convey.So(err, convey.ShouldBeNil)
			convey.So(m.Properties["title"].Analyzer, convey.ShouldEqual, "ru")
			convey.So(m.Properties["title"].SearchAnalyzer, convey.ShouldBeEmpty)
		})
	})
}

func TestOverridesAndKeyView(t *testing.T) {
	convey.Convey("test overrides and key view", t, func() {
		convey.Convey("override pins the field shape", func() {
			doc := map[string]interface{}{"price": 9.99}
			overrides := []mapping.FieldOverride{
				{Field: "price", Mapping: mapping.Property{Type: "scaled_float"}},
			}
			m, updates := buildOne(t, doc, BuildInput{Overrides: overrides})
			convey.So(m.Properties["price"].Type, convey.ShouldEqual, "scaled_float")
			convey.So(updates["price"].Type, convey.ShouldEqual, "scaled_float")
		})

		convey.Convey("recorded shapes win over fresh inference", func() {
			view := frozen{"count": {Type: "long"}}
			doc := map[string]interface{}{"count": "many"}
			m, updates := buildOne(t, doc, BuildInput{Log: view})
			convey.So(m.Properties["count"].Type, convey.ShouldEqual, "long")
			convey.So(updates, convey.ShouldNotContainKey, "count")
		})

		convey.Convey("one build is self-consistent across repeated names", func() {
			doc := map[string]interface{}{
				"a": map[string]interface{}{"id": 1},
				"b": []interface{}{map[string]interface{}{"id": "str"}},
			}
			m, _ := buildOne(t, doc, BuildInput{})
			// both paths end in .id but are distinct; no cross-talk
			convey.So(m.Properties["a"].Properties["id"].Type, convey.ShouldEqual, "long")
			convey.So(m.Properties["b"].Properties["id"].Type, convey.ShouldEqual, "text")
		})
	})
}

type frozen map[string]*mapping.Property

func (f frozen) Lookup(key string) (*mapping.Property, bool) {
	p, ok := f[key]
	return p, ok
}
