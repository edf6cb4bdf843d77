package mapping

import (
	"encoding/json"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestDynamicWireFormat(t *testing.T) {
	convey.Convey("test dynamic wire format", t, func() {
		convey.So(DynamicOf(true), convey.ShouldEqual, DynamicTrue)
		convey.So(DynamicOf(false), convey.ShouldEqual, DynamicFalse)
		convey.So(DynamicTrue.WireString(), convey.ShouldEqual, "true")
		convey.So(DynamicFalse.WireString(), convey.ShouldEqual, "false")
		convey.So(DynamicTrue.Bool(), convey.ShouldBeTrue)

		convey.Convey("marshals as stringified flag", func() {
			m := &Mapping{Dynamic: DynamicFalse}
			data, err := json.Marshal(m)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldEqual, `{"dynamic":"false"}`)
		})

		convey.Convey("unmarshal roundtrip", func() {
			var d Dynamic
			convey.So(json.Unmarshal([]byte(`"true"`), &d), convey.ShouldBeNil)
			convey.So(d, convey.ShouldEqual, DynamicTrue)
			convey.So(json.Unmarshal([]byte(`"false"`), &d), convey.ShouldBeNil)
			convey.So(d, convey.ShouldEqual, DynamicFalse)
		})
	})
}

func TestPropertyCloneAndShape(t *testing.T) {
	convey.Convey("test property clone and shape", t, func() {
		indexed := false
		p := &Property{
			Type:     "text",
			Analyzer: "default_index",
			Index:    &indexed,
			Properties: map[string]*Property{
				"raw": {Type: "keyword"},
			},
		}

		convey.Convey("clone is deep", func() {
			cp := p.Clone()
			convey.So(cp, convey.ShouldResemble, p)

			cp.Properties["raw"].Type = "text"
			*cp.Index = true
			convey.So(p.Properties["raw"].Type, convey.ShouldEqual, "keyword")
			convey.So(*p.Index, convey.ShouldBeFalse)
		})

		convey.Convey("shape ignores analyzers but not structure", func() {
			other := p.Clone()
			other.Analyzer = "something_else"
			convey.So(p.SameShape(other), convey.ShouldBeTrue)

			other.Properties["raw"].Type = "long"
			convey.So(p.SameShape(other), convey.ShouldBeFalse)

			convey.So(p.SameShape(&Property{Type: "long"}), convey.ShouldBeFalse)
			convey.So(p.SameShape(nil), convey.ShouldBeFalse)
		})
	})
}

func TestSettings(t *testing.T) {
	convey.Convey("test settings", t, func() {
		convey.Convey("merge never overwrites", func() {
			cfg := DefaultAnalysis()
			cfg.Merge(AnalysisConfig{
				Filters: map[string]interface{}{
					"edge_ngram": map[string]interface{}{"type": "other"},
					"shingle":    map[string]interface{}{"type": "shingle"},
				},
			})
			first, _ := cfg.Filters["edge_ngram"].(map[string]interface{})
			convey.So(first["type"], convey.ShouldEqual, "edge_ngram")
			convey.So(cfg.Filters, convey.ShouldContainKey, "shingle")
		})

		convey.Convey("snapshot membership is independent", func() {
			s := &Settings{Analysis: DefaultAnalysis()}
			cp := s.Snapshot()
			s.Analysis.Merge(AnalysisConfig{
				Analyzers: map[string]interface{}{"late": map[string]interface{}{}},
			})
			convey.So(cp.Analysis.Analyzers, convey.ShouldNotContainKey, "late")

			v := true
			s.MapperDynamic = &v
			cp2 := s.Snapshot()
			*s.MapperDynamic = false
			convey.So(*cp2.MapperDynamic, convey.ShouldBeTrue)
		})

		convey.Convey("marshal includes the dynamic switch only when set", func() {
			s := &Settings{Analysis: AnalysisConfig{}}
			data, err := json.Marshal(s)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldNotContainSubstring, "index.mapper.dynamic")

			v := false
			s.MapperDynamic = &v
			data, err = json.Marshal(s)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldContainSubstring, `"index.mapper.dynamic":false`)
		})
	})
}
