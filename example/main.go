package main

import (
	"fmt"

	"github.com/echoface/esmapper"
	"github.com/echoface/esmapper/mapping"
	"github.com/echoface/esmapper/util"
)

func main() {
	reg := esmapper.NewRegistry()

	reg.Configure(mapping.AnalysisConfig{
		Filters: map[string]interface{}{
			"my_shingle": map[string]interface{}{
				"type":             "shingle",
				"max_shingle_size": 3,
			},
		},
	})

	doc := map[string]interface{}{
		"name":    "Widget",
		"price":   9.99,
		"stock":   12,
		"addedAt": "2024-03-05",
		"vendor": map[string]interface{}{
			"name": "Acme",
			"rank": 3,
		},
		"variants": []interface{}{
			map[string]interface{}{"sku": "w-1", "color": "red"},
		},
	}

	overrides := []mapping.FieldOverride{
		{Field: "price", Mapping: mapping.Property{Type: "scaled_float"}},
	}

	m, err := reg.MapFromDocument("shop", "product", doc, overrides)
	if err != nil {
		panic(err)
	}
	fmt.Println("product mapping:")
	fmt.Println(util.JSONPretty(m))

	if err = reg.EnableIndexLevelDynamicMappings("shop"); err != nil {
		panic(err)
	}
	if err = reg.DynamicMapping("shop", true); err != nil {
		panic(err)
	}

	idx, _ := reg.GetIndex("shop")
	fmt.Println("create-index body:")
	fmt.Println(util.JSONPretty(idx))
}
