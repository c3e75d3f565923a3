package dal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Vehicle defines a listed car as served by the backend
type Vehicle struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Price        Price     `json:"price"`
	Mileage      int       `json:"mileage"`
	Transmission string    `json:"transmission"`
	FuelType     string    `json:"fuel_type"`
	Status       string    `json:"status"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}

// Condition is the listing status (new, used, ...)
func (v Vehicle) Condition() string {
	return v.Status
}

// Catalog holds the four collections loaded at startup
type Catalog struct {
	Vehicles    []Vehicle         `json:"vehicles"`
	Categories  []string          `json:"categories"`
	Makes       []string          `json:"makes"`
	PriceRanges []json.RawMessage `json:"price_ranges"`
}

// Copy returns a catalog that shares no slices with c
func (c Catalog) Copy() Catalog {
	return Catalog{
		Vehicles:    append([]Vehicle(nil), c.Vehicles...),
		Categories:  append([]string(nil), c.Categories...),
		Makes:       append([]string(nil), c.Makes...),
		PriceRanges: append([]json.RawMessage(nil), c.PriceRanges...),
	}
}

// FindVehicle looks a vehicle up by id
func (c Catalog) FindVehicle(id int) (Vehicle, bool) {
	for _, v := range c.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// Price is a currency amount. The backend sends it either as a JSON number
// or as a decimal string.
type Price float64

// UnmarshalJSON accepts numbers, numeric strings and null
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q: %w", s, err)
		}
		*p = Price(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = Price(f)
	return nil
}

// Timestamp is the listing creation time. A value the backend sent in an
// unknown layout decodes to the zero time and keeps the raw text in Unparsed.
type Timestamp struct {
	time.Time
	Unparsed string `json:"-"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON parses RFC3339 and the common SQL datetime layouts. Anything
// else, including non-string values, leaves the zero time.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		t.Unparsed = string(b)
		return nil
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Unparsed = s
	return nil
}

// Valid reports whether the backend value was absent or understood
func (t Timestamp) Valid() bool {
	return t.Unparsed == ""
}

// MarshalJSON writes RFC3339, or null for the zero time
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
