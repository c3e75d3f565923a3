// Package filter derives the displayed vehicle list from the full catalog.
package filter

import (
	"sort"

	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
)

type predicate func(dal.Vehicle) bool

// Filter applies the condition, make and transmission constraints in that order
// and then one sort. It always works from the full collection passed in and
// never mutates it. Sorting is stable, so equal keys keep catalog order.
func Filter(vehicles []dal.Vehicle, c Criteria) []dal.Vehicle {
	stages := []predicate{
		match(c.Condition, func(v dal.Vehicle) string { return v.Condition() }),
		match(c.Make, func(v dal.Vehicle) string { return v.Make }),
		match(c.Transmission, func(v dal.Vehicle) string { return v.Transmission }),
	}

	result := make([]dal.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if keep(v, stages) {
			result = append(result, v)
		}
	}

	sort.SliceStable(result, less(result, c.Sort))
	return result
}

func keep(v dal.Vehicle, stages []predicate) bool {
	for _, stage := range stages {
		if stage != nil && !stage(v) {
			return false
		}
	}
	return true
}

func match(want string, field func(dal.Vehicle) string) predicate {
	if want == "" {
		return nil
	}
	return func(v dal.Vehicle) bool {
		return field(v) == want
	}
}

func less(vehicles []dal.Vehicle, key string) func(i, j int) bool {
	switch key {
	case SortPriceAsc:
		return func(i, j int) bool { return vehicles[i].Price < vehicles[j].Price }
	case SortPriceDesc:
		return func(i, j int) bool { return vehicles[i].Price > vehicles[j].Price }
	default:
		return func(i, j int) bool {
			return vehicles[i].CreatedAt.After(vehicles[j].CreatedAt.Time)
		}
	}
}
