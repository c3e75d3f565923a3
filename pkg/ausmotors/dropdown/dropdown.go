// Package dropdown builds the option lists for the storefront selection controls.
package dropdown

import (
	"encoding/json"

	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
)

// Option is a single entry of a selection control
type Option struct {
	Value string
	Label string
}

// AnyModel is the sentinel entry heading the model control
var AnyModel = Option{Value: "", Label: "Any model"}

// priceBands are fixed; the loaded price ranges only gate whether the control is filled.
var priceBands = []Option{
	{Value: "", Label: "All prices"},
	{Value: "0-50000", Label: "$0 - $50,000"},
	{Value: "50000-100000", Label: "$50,000 - $100,000"},
	{Value: "100000+", Label: "$100,000+"},
}

// MakeOptions returns one option per make in collection order
func MakeOptions(makes []string) []Option {
	options := make([]Option, 0, len(makes))
	for _, m := range makes {
		options = append(options, Option{Value: m, Label: m})
	}
	return options
}

// PriceOptions returns the fixed price bands, or nil when no price ranges were loaded
func PriceOptions(priceRanges []json.RawMessage) []Option {
	if priceRanges == nil {
		return nil
	}
	return append([]Option(nil), priceBands...)
}

// ModelOptions returns the sentinel followed by the distinct models of the
// selected make, in first-occurrence order
func ModelOptions(vehicles []dal.Vehicle, makeName string) []Option {
	options := []Option{AnyModel}
	if makeName == "" {
		return options
	}
	seen := make(map[string]struct{})
	for _, v := range vehicles {
		if v.Make != makeName {
			continue
		}
		if _, ok := seen[v.Model]; ok {
			continue
		}
		seen[v.Model] = struct{}{}
		options = append(options, Option{Value: v.Model, Label: v.Model})
	}
	return options
}

// Set is the option content of every selection control on the page
type Set struct {
	SearchMakes []Option
	FilterMakes []Option
	Prices      []Option
	Models      []Option
}

// Populate fills every control from the loaded catalog
func Populate(c dal.Catalog) Set {
	return Set{
		SearchMakes: MakeOptions(c.Makes),
		FilterMakes: MakeOptions(c.Makes),
		Prices:      PriceOptions(c.PriceRanges),
		Models:      ModelOptions(c.Vehicles, ""),
	}
}
