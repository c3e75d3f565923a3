package filter

import (
	"net/url"
	"testing"
	"time"

	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
	"github.com/stretchr/testify/assert"
)

func at(day int) dal.Timestamp {
	return dal.Timestamp{Time: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)}
}

func fixture() []dal.Vehicle {
	return []dal.Vehicle{
		{ID: 1, Make: "Toyota", Model: "Corolla", Price: 21000, Transmission: "automatic", Status: "used", CreatedAt: at(3)},
		{ID: 2, Make: "Ford", Model: "Ranger", Price: 52000, Transmission: "manual", Status: "new", CreatedAt: at(5)},
		{ID: 3, Make: "Toyota", Model: "Hilux", Price: 48000, Transmission: "manual", Status: "new", CreatedAt: at(1)},
		{ID: 4, Make: "Toyota", Model: "Corolla", Price: 21000, Transmission: "automatic", Status: "new", CreatedAt: at(4)},
		{ID: 5, Make: "Mazda", Model: "CX-5", Price: 35500, Transmission: "automatic", Status: "used", CreatedAt: at(2)},
	}
}

func ids(vehicles []dal.Vehicle) []int {
	out := make([]int, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, v.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		expected []int
	}{
		{name: "NoCriteriaSortsRecent", criteria: Criteria{}, expected: []int{2, 4, 1, 5, 3}},
		{name: "UnknownSortSortsRecent", criteria: Criteria{Sort: "mileage"}, expected: []int{2, 4, 1, 5, 3}},
		{name: "ConditionOnly", criteria: Criteria{Condition: "new", Sort: SortRecent}, expected: []int{2, 4, 3}},
		{name: "MakeAndTransmission", criteria: Criteria{Make: "Toyota", Transmission: "automatic", Sort: SortPriceAsc}, expected: []int{1, 4}},
		{name: "PriceAscStable", criteria: Criteria{Sort: SortPriceAsc}, expected: []int{1, 4, 5, 3, 2}},
		{name: "PriceDesc", criteria: Criteria{Sort: SortPriceDesc}, expected: []int{2, 3, 5, 1, 4}},
		{name: "NoMatch", criteria: Criteria{Make: "Holden"}, expected: []int{}},
		{name: "SearchIgnored", criteria: Criteria{Search: "Ranger", Sort: SortPriceAsc}, expected: []int{1, 4, 5, 3, 2}},
		{name: "ModelAndPriceIgnored", criteria: Criteria{Model: "Hilux", Price: "100000+", Sort: SortPriceAsc}, expected: []int{1, 4, 5, 3, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ids(Filter(fixture(), tc.criteria)))
		})
	}
}

func TestFilterProperties(t *testing.T) {
	all := fixture()
	criteria := []Criteria{
		{},
		{Condition: "new"},
		{Make: "Toyota", Sort: SortPriceDesc},
		{Transmission: "manual", Sort: SortPriceAsc},
	}

	for _, c := range criteria {
		once := Filter(all, c)
		assert.Equal(t, once, Filter(once, c), "filter must be idempotent for %+v", c)

		for _, v := range once {
			assert.Contains(t, all, v)
			if c.Condition != "" {
				assert.Equal(t, c.Condition, v.Condition())
			}
			if c.Make != "" {
				assert.Equal(t, c.Make, v.Make)
			}
			if c.Transmission != "" {
				assert.Equal(t, c.Transmission, v.Transmission)
			}
		}
	}

	asc := Filter(all, Criteria{Sort: SortPriceAsc})
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, float64(asc[i-1].Price), float64(asc[i].Price))
	}
	desc := Filter(all, Criteria{Sort: SortPriceDesc})
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, float64(desc[i-1].Price), float64(desc[i].Price))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	all := fixture()
	Filter(all, Criteria{Sort: SortPriceDesc})
	assert.Equal(t, fixture(), all)
}

func TestParseCriteria(t *testing.T) {
	vars := url.Values{
		"condition":    {" used "},
		"make":         {"Toyota"},
		"transmission": {""},
		"sort":         {"price-asc"},
		"model":        {"Hilux"},
		"price":        {"0-50000"},
		"search":       {"hilux"},
	}
	c := ParseCriteria(vars)
	assert.Equal(t, Criteria{Condition: "used", Make: "Toyota", Sort: SortPriceAsc, Model: "Hilux", Price: "0-50000", Search: "hilux"}, c)
	assert.Equal(t, c, ParseCriteria(c.Values()))
}
