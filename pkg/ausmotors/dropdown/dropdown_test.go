package dropdown

import (
	"encoding/json"
	"testing"

	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
	"github.com/stretchr/testify/assert"
)

func TestMakeOptionsKeepsOrderAndDuplicates(t *testing.T) {
	options := MakeOptions([]string{"Toyota", "Ford", "Toyota"})
	assert.Equal(t, []Option{
		{Value: "Toyota", Label: "Toyota"},
		{Value: "Ford", Label: "Ford"},
		{Value: "Toyota", Label: "Toyota"},
	}, options)
}

func TestPriceOptionsIgnoreLoadedRanges(t *testing.T) {
	ranges := []json.RawMessage{json.RawMessage(`{"min":1,"max":2}`)}
	options := PriceOptions(ranges)
	assert.Len(t, options, 4)
	assert.Equal(t, "", options[0].Value)
	assert.Equal(t, "100000+", options[3].Value)

	assert.Equal(t, options, PriceOptions([]json.RawMessage{}))
	assert.Nil(t, PriceOptions(nil))
}

func TestModelOptions(t *testing.T) {
	vehicles := []dal.Vehicle{
		{Make: "Toyota", Model: "Corolla"},
		{Make: "Ford", Model: "Ranger"},
		{Make: "Toyota", Model: "Corolla"},
		{Make: "Toyota", Model: "Hilux"},
	}

	tests := []struct {
		name     string
		make     string
		expected []string
	}{
		{name: "Toyota", make: "Toyota", expected: []string{"", "Corolla", "Hilux"}},
		{name: "NoMake", make: "", expected: []string{""}},
		{name: "UnknownMake", make: "Holden", expected: []string{""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var values []string
			for _, o := range ModelOptions(vehicles, tc.make) {
				values = append(values, o.Value)
			}
			assert.Equal(t, tc.expected, values)
		})
	}
}

func TestPopulate(t *testing.T) {
	set := Populate(dal.Catalog{
		Makes:       []string{"Mazda"},
		PriceRanges: []json.RawMessage{json.RawMessage(`"0-50000"`)},
	})
	assert.Equal(t, set.SearchMakes, set.FilterMakes)
	assert.Len(t, set.Prices, 4)
	assert.Equal(t, []Option{AnyModel}, set.Models)
}
