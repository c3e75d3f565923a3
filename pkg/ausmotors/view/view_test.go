package view

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
	"github.com/ausmotors/storefront/pkg/ausmotors/filter"
	"github.com/ausmotors/storefront/pkg/ausmotors/render"
	"github.com/ausmotors/storefront/pkg/ausmotors/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func catalog() dal.Catalog {
	var vehicles []dal.Vehicle
	for i := 1; i <= 10; i++ {
		mk, model := "Toyota", "Corolla"
		if i%2 == 0 {
			mk, model = "Ford", "Ranger"
		}
		vehicles = append(vehicles, dal.Vehicle{
			ID:        i,
			Name:      mk + " " + model,
			Make:      mk,
			Model:     model,
			Price:     dal.Price(10000 * i),
			CreatedAt: dal.Timestamp{Time: time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC)},
		})
	}
	return dal.Catalog{Vehicles: vehicles, Makes: []string{"Toyota", "Ford"}}
}

func newView(t *testing.T) (*View, *store.Store) {
	t.Helper()
	r, err := render.New(language.English)
	require.NoError(t, err)
	s := store.New()
	v := New(s, r, Options{TrackWidth: 900, CardWidth: 300}, quietLogger())
	return v, s
}

func TestDisplayBeforeLoad(t *testing.T) {
	v, _ := newView(t)
	d, err := v.Display(filter.Criteria{Make: "Ford"}, 0)
	require.NoError(t, err)
	assert.Nil(t, d.Dropdowns)
	assert.Empty(t, d.Vehicles)
	assert.Equal(t, 0, d.Carousel.Max)
}

func TestDisplayAfterLoad(t *testing.T) {
	v, s := newView(t)
	require.NoError(t, s.Set(catalog()))

	d, err := v.Display(filter.Criteria{}, 0)
	require.NoError(t, err)
	require.NotNil(t, d.Dropdowns)
	assert.Len(t, d.Dropdowns.FilterMakes, 2)
	assert.Len(t, d.Vehicles, 10)
	assert.Equal(t, 10, d.Vehicles[0].ID)
	assert.Equal(t, 10, strings.Count(d.Fragment, `<article class="card"`))
	assert.Equal(t, 7, d.Carousel.Max)
	assert.Equal(t, 0, d.Carousel.Index)
}

func TestDisplayRecomputesFromFullCatalog(t *testing.T) {
	v, s := newView(t)
	require.NoError(t, s.Set(catalog()))

	fords, err := v.Display(filter.Criteria{Make: "Ford", Sort: filter.SortPriceAsc}, 0)
	require.NoError(t, err)
	assert.Len(t, fords.Vehicles, 5)
	assert.Equal(t, 2, fords.Vehicles[0].ID)
	assert.Equal(t, "Ranger", fords.Dropdowns.Models[1].Value)

	toyotas, err := v.Display(filter.Criteria{Make: "Toyota"}, 0)
	require.NoError(t, err)
	assert.Len(t, toyotas.Vehicles, 5)
	assert.Equal(t, "Corolla", toyotas.Dropdowns.Models[1].Value)

	plain, err := v.Display(filter.Criteria{}, 0)
	require.NoError(t, err)
	assert.Len(t, plain.Vehicles, 10)
	assert.Len(t, plain.Dropdowns.Models, 1)
}

func TestDisplayCarouselBoundsFollowRender(t *testing.T) {
	v, s := newView(t)
	require.NoError(t, s.Set(catalog()))

	all, err := v.Display(filter.Criteria{}, 999)
	require.NoError(t, err)
	assert.Equal(t, 7, all.Carousel.Index)
	assert.Equal(t, 2100, all.Carousel.Offset)

	fords, err := v.Display(filter.Criteria{Make: "Ford"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, fords.Carousel.Max)
	assert.Equal(t, 0, fords.Carousel.Index)

	narrowed, err := v.Display(filter.Criteria{Make: "Ford"}, 6)
	require.NoError(t, err)
	assert.Equal(t, 2, narrowed.Carousel.Index)
	assert.Equal(t, 600, narrowed.Carousel.Offset)

	negative, err := v.Display(filter.Criteria{}, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, negative.Carousel.Index)
}

func TestDisplayConcurrentCriteria(t *testing.T) {
	v, s := newView(t)
	require.NoError(t, s.Set(catalog()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		criteria := filter.Criteria{Make: "Ford"}
		expected := `<h3 class="card__title">Ford Ranger</h3>`
		if i%2 == 0 {
			criteria.Make, expected = "Toyota", `<h3 class="card__title">Toyota Corolla</h3>`
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := v.Display(criteria, 0)
			assert.NoError(t, err)
			assert.Len(t, d.Vehicles, 5)
			assert.Equal(t, 5, strings.Count(d.Fragment, expected))
		}()
	}
	wg.Wait()
}

func TestModels(t *testing.T) {
	v, s := newView(t)
	require.NoError(t, s.Set(catalog()))

	options := v.Models("Ford")
	require.Len(t, options, 2)
	assert.Equal(t, "Ranger", options[1].Value)
}
