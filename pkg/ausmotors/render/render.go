// Package render turns storefront state into HTML fragments and pages.
package render

import (
	"embed"
	"html/template"
	"io"
	"math"
	"strconv"

	"github.com/ausmotors/storefront/pkg/ausmotors/carousel"
	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
	"github.com/ausmotors/storefront/pkg/ausmotors/dropdown"
	"github.com/ausmotors/storefront/pkg/ausmotors/filter"
	"github.com/ausmotors/storefront/pkg/ausmotors/finance"
	"github.com/ausmotors/storefront/pkg/ausmotors/notify"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PlaceholderImage is shown for vehicles without an image
const PlaceholderImage = "https://images.unsplash.com/photo-1493238850501-854fdb5b1c4b?q=80&w=1200&auto=format&fit=crop"

//go:embed templates/*.html
var templateFS embed.FS

// Carousel is the vehicle region together with its slide state
type Carousel struct {
	carousel.State
	Vehicles []dal.Vehicle
	PrevURL  template.URL
	NextURL  template.URL
}

// NewCarousel links the prev and next controls to the page for c, one card
// either side of the current position
func NewCarousel(state carousel.State, vehicles []dal.Vehicle, c filter.Criteria) Carousel {
	return Carousel{
		State:    state,
		Vehicles: vehicles,
		PrevURL:  slideURL(c, state.Index-1),
		NextURL:  slideURL(c, state.Index+1),
	}
}

// Select is a control's options and its current value
type Select struct {
	Options  []dropdown.Option
	Selected string
}

// Finance is the content of the finance result area
type Finance struct {
	Kind  string
	Error string
	Lines []finance.Line
}

// Page is everything the full document needs
type Page struct {
	Year          int
	Criteria      filter.Criteria
	Dropdowns     *dropdown.Set
	Carousel      Carousel
	Finance       *Finance
	Notifications []notify.Notification
}

// Renderer executes the storefront templates
type Renderer struct {
	tmpl    *template.Template
	printer *message.Printer
}

// New parses the embedded templates. Prices are formatted for the given locale.
func New(tag language.Tag) (*Renderer, error) {
	r := &Renderer{printer: message.NewPrinter(tag)}
	tmpl, err := template.New("storefront").Funcs(template.FuncMap{
		"price":    r.FormatPrice,
		"imageURL": ImageURL,
		"selectOf": selectOf,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes one card per vehicle, replacing whatever the region held before
func (r *Renderer) Render(w io.Writer, vehicles []dal.Vehicle) error {
	return r.tmpl.ExecuteTemplate(w, "vehicles", vehicles)
}

// RenderCarousel writes the vehicle region with its track offset and controls
func (r *Renderer) RenderCarousel(w io.Writer, c Carousel) error {
	return r.tmpl.ExecuteTemplate(w, "carousel", c)
}

// RenderOptions writes option entries for a selection control, marking the
// one whose value is selected
func (r *Renderer) RenderOptions(w io.Writer, options []dropdown.Option, selected string) error {
	return r.tmpl.ExecuteTemplate(w, "options", selectOf(options, selected))
}

// RenderFinance writes the finance result area
func (r *Renderer) RenderFinance(w io.Writer, f Finance) error {
	return r.tmpl.ExecuteTemplate(w, "finance", f)
}

// RenderNotifications writes the notification stack
func (r *Renderer) RenderNotifications(w io.Writer, notes []notify.Notification) error {
	return r.tmpl.ExecuteTemplate(w, "notifications", notes)
}

// RenderPage writes the full document
func (r *Renderer) RenderPage(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "page", p)
}

// FormatPrice renders a price with the currency sign and thousands separators
func (r *Renderer) FormatPrice(p dal.Price) string {
	v := float64(p)
	if v == math.Trunc(v) {
		return "$" + r.printer.Sprintf("%d", int64(v))
	}
	return "$" + r.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func selectOf(options []dropdown.Option, selected string) Select {
	return Select{Options: options, Selected: selected}
}

func slideURL(c filter.Criteria, index int) template.URL {
	if index < 0 {
		index = 0
	}
	vars := c.Values()
	vars.Set("slide", strconv.Itoa(index))
	return template.URL("/?" + vars.Encode() + "#inventory")
}

// ImageURL falls back to the placeholder when the vehicle has no image
func ImageURL(v dal.Vehicle) string {
	if v.ImageURL == "" {
		return PlaceholderImage
	}
	return v.ImageURL
}
