package filter

import (
	"net/url"
	"strings"
)

// Sort keys accepted from the filter form
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRecent    = "recent"
)

// Criteria is the filter form state. It is rebuilt on every request.
type Criteria struct {
	Condition    string `json:"condition,omitempty"`
	Make         string `json:"make,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Sort         string `json:"sort,omitempty"`

	// Model, Price and Search are captured from the search form so the form
	// can be shown again as submitted. They are not matched against vehicles.
	Model  string `json:"model,omitempty"`
	Price  string `json:"price,omitempty"`
	Search string `json:"search,omitempty"`
}

// ParseCriteria reads criteria from form or query values
func ParseCriteria(vars url.Values) Criteria {
	return Criteria{
		Condition:    formValue(vars, "condition"),
		Make:         formValue(vars, "make"),
		Transmission: formValue(vars, "transmission"),
		Sort:         formValue(vars, "sort"),
		Model:        formValue(vars, "model"),
		Price:        formValue(vars, "price"),
		Search:       formValue(vars, "search"),
	}
}

// Values is the inverse of ParseCriteria, used to build links that keep the form state
func (c Criteria) Values() url.Values {
	vars := url.Values{}
	for key, value := range map[string]string{
		"condition":    c.Condition,
		"make":         c.Make,
		"transmission": c.Transmission,
		"sort":         c.Sort,
		"model":        c.Model,
		"price":        c.Price,
		"search":       c.Search,
	} {
		if value != "" {
			vars.Set(key, value)
		}
	}
	return vars
}

func formValue(vars url.Values, key string) string {
	return strings.TrimSpace(vars.Get(key))
}
