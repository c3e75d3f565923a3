// Package view derives what a request displays from the catalog and the
// request's own form state.
package view

import (
	"bytes"
	"sync"

	"github.com/ausmotors/storefront/pkg/ausmotors/carousel"
	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
	"github.com/ausmotors/storefront/pkg/ausmotors/dropdown"
	"github.com/ausmotors/storefront/pkg/ausmotors/filter"
	"github.com/ausmotors/storefront/pkg/ausmotors/render"
	"github.com/ausmotors/storefront/pkg/ausmotors/store"
	"github.com/sirupsen/logrus"
)

// Options sizes the carousel
type Options struct {
	TrackWidth int
	CardWidth  int
}

// Display is everything rendered for one set of criteria
type Display struct {
	Criteria  filter.Criteria
	Vehicles  []dal.Vehicle
	Fragment  string
	Dropdowns *dropdown.Set
	Carousel  carousel.State
}

// View renders displays from the store. The only state it keeps is the
// dropdown content populated when the catalog loads; everything else is
// computed per call, so concurrent requests never see each other's filters.
type View struct {
	store    *store.Store
	renderer *render.Renderer
	opts     Options
	log      *logrus.Logger

	mu        sync.RWMutex
	dropdowns *dropdown.Set
}

// New subscribes a view to s
func New(s *store.Store, r *render.Renderer, opts Options, logger *logrus.Logger) *View {
	if logger == nil {
		logger = logrus.New()
	}
	v := &View{
		store:    s,
		renderer: r,
		opts:     opts,
		log:      logger,
	}
	s.Subscribe(v.onCatalog)
	return v
}

func (v *View) onCatalog(c dal.Catalog) {
	set := dropdown.Populate(c)
	v.mu.Lock()
	v.dropdowns = &set
	v.mu.Unlock()

	v.log.WithFields(logrus.Fields{
		"makes":    len(set.FilterMakes),
		"prices":   len(set.Prices),
		"vehicles": len(c.Vehicles),
	}).Info("Populated search dropdowns")
}

// Display filters the full catalog with c, renders the vehicle region and
// builds a fresh carousel for it positioned at slide.
func (v *View) Display(c filter.Criteria, slide int) (Display, error) {
	catalog, _ := v.store.Catalog()
	vehicles := filter.Filter(catalog.Vehicles, c)

	var buf bytes.Buffer
	if err := v.renderer.Render(&buf, vehicles); err != nil {
		return Display{}, err
	}

	track := v.Carousel(len(vehicles))
	track.SlideTo(slide)

	v.log.WithFields(logrus.Fields{
		"criteria": c,
		"total":    len(catalog.Vehicles),
		"shown":    len(vehicles),
	}).Debug("Filtered vehicles")

	return Display{
		Criteria:  c,
		Vehicles:  vehicles,
		Fragment:  buf.String(),
		Dropdowns: v.dropdownsFor(catalog.Vehicles, c.Make),
		Carousel:  track.State(),
	}, nil
}

// Carousel returns a carousel at position 0 for total cards
func (v *View) Carousel(total int) *carousel.Carousel {
	return carousel.New(total, v.opts.TrackWidth, v.opts.CardWidth)
}

// Models returns the model control content for the selected make
func (v *View) Models(makeName string) []dropdown.Option {
	catalog, _ := v.store.Catalog()
	return dropdown.ModelOptions(catalog.Vehicles, makeName)
}

// dropdownsFor copies the populated controls with the model control filled
// for makeName. It is nil until the catalog has loaded.
func (v *View) dropdownsFor(vehicles []dal.Vehicle, makeName string) *dropdown.Set {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.dropdowns == nil {
		return nil
	}
	set := *v.dropdowns
	set.Models = dropdown.ModelOptions(vehicles, makeName)
	return &set
}
