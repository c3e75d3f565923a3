package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ausmotors/storefront/pkg/ausmotors/dal"
	"github.com/ausmotors/storefront/pkg/ausmotors/filter"
	"github.com/ausmotors/storefront/pkg/ausmotors/finance"
	"github.com/ausmotors/storefront/pkg/ausmotors/notify"
	"github.com/ausmotors/storefront/pkg/ausmotors/render"
	"github.com/ausmotors/storefront/pkg/ausmotors/view"
	"github.com/gorilla/mux"
)

const (
	subscribedMessage = "Thank you for subscribing!"
	maxFormBytes      = 64 << 10
)

// GetPage renders the full storefront. A query string is treated as a
// search or filter form submission; slide positions the carousel.
func (h *httpServer) GetPage(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()
	d, err := h.view.Display(filter.ParseCriteria(vars), slideIndex(vars))
	if err != nil {
		h.serverError(w, "filter", err)
		return
	}
	h.writePage(w, r, http.StatusOK, d, nil)
}

// GetHealth reports whether the catalog has been loaded
func (h *httpServer) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")
	status := http.StatusOK
	if !h.store.Loaded() {
		status = http.StatusServiceUnavailable
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]bool{"loaded": status == http.StatusOK})
}

// GetVehicles re-filters the catalog and returns the vehicle region
func (h *httpServer) GetVehicles(w http.ResponseWriter, r *http.Request) {
	d, err := h.view.Display(filter.ParseCriteria(r.URL.Query()), 0)
	if err != nil {
		h.serverError(w, "filter", err)
		return
	}
	w.Header().Add("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(d.Fragment))
}

// GetVehicle returns the details of one vehicle
func (h *httpServer) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := validateVehicleID(w, mux.Vars(r))
	if err != nil {
		h.log.WithError(err).Warn("vehicle id validation failed")
		return
	}

	catalog, _ := h.store.Catalog()
	vehicle, ok := catalog.FindVehicle(id)
	if !ok {
		http.Error(w, fmt.Sprintf("vehicle not found: %d", id), http.StatusNotFound)
		return
	}
	w.Header().Add("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.details(vehicle)))
}

// GetModels returns the model options for the selected make
func (h *httpServer) GetModels(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()
	options := h.view.Models(strings.TrimSpace(vars.Get("make")))
	h.writeFragment(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.RenderOptions(buf, options, vars.Get("model"))
	})
}

// PostFinance computes a repayment estimate from the finance form
func (h *httpServer) PostFinance(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	result := render.Finance{Kind: "success"}
	status := http.StatusOK
	res, err := finance.Compute(finance.ParseInput(r.PostForm))
	switch {
	case errors.Is(err, finance.ErrInvalidInput):
		result = render.Finance{Kind: "error", Error: finance.InvalidInputMessage}
		status = http.StatusBadRequest
	case err != nil:
		h.serverError(w, "finance", err)
		return
	default:
		result.Lines = res.Lines()
	}

	if !wantsFragment(r) {
		vars := r.URL.Query()
		d, err := h.view.Display(filter.ParseCriteria(vars), slideIndex(vars))
		if err != nil {
			h.serverError(w, "filter", err)
			return
		}
		h.writePage(w, r, status, d, &result)
		return
	}
	h.writeFragment(w, status, func(buf *bytes.Buffer) error {
		return h.renderer.RenderFinance(buf, result)
	})
}

// GetCarousel returns the carousel state for the criteria and slide in the query
func (h *httpServer) GetCarousel(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()
	d, err := h.view.Display(filter.ParseCriteria(vars), slideIndex(vars))
	if err != nil {
		h.serverError(w, "filter", err)
		return
	}
	writeJSON(w, d.Carousel)
}

// PostCarousel moves the carousel one card back or forward from the slide
// in the request
func (h *httpServer) PostCarousel(w http.ResponseWriter, r *http.Request) {
	next, err := validateDirection(w, mux.Vars(r))
	if err != nil {
		h.log.WithError(err).Warn("carousel direction validation failed")
		return
	}
	if !parseForm(w, r) {
		return
	}

	criteria := filter.ParseCriteria(r.Form)
	d, err := h.view.Display(criteria, slideIndex(r.Form))
	if err != nil {
		h.serverError(w, "filter", err)
		return
	}
	track := h.view.Carousel(len(d.Vehicles))
	track.SlideTo(d.Carousel.Index)
	if next {
		track.Next()
	} else {
		track.Prev()
	}
	state := track.State()

	if !wantsFragment(r) {
		vars := criteria.Values()
		vars.Set("slide", strconv.Itoa(state.Index))
		http.Redirect(w, r, "/?"+vars.Encode()+"#inventory", http.StatusSeeOther)
		return
	}
	writeJSON(w, state)
}

// PostNewsletter thanks the visitor for a subscription. An empty email is ignored.
func (h *httpServer) PostNewsletter(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	client := h.clientID(w, r)
	if email := strings.TrimSpace(r.PostForm.Get("email")); email != "" {
		h.notes.Notify(client, subscribedMessage, notify.KindSuccess)
		h.log.WithField("client", client).Info("newsletter subscription")
	}
	if !wantsFragment(r) {
		http.Redirect(w, r, "/#newsletter", http.StatusSeeOther)
		return
	}
	h.writeNotifications(w, client)
}

// GetNotifications returns the visitor's notification stack
func (h *httpServer) GetNotifications(w http.ResponseWriter, r *http.Request) {
	h.writeNotifications(w, h.lookupClient(r))
}

// DismissNotification removes one of the visitor's notifications before it expires
func (h *httpServer) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	client := h.lookupClient(r)
	if client == "" || !h.notes.Dismiss(client, id) {
		http.Error(w, fmt.Sprintf("notification not found: %s", id), http.StatusNotFound)
		return
	}
	if r.Method == http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *httpServer) writeNotifications(w http.ResponseWriter, client string) {
	notes := h.notes.List(client)
	h.writeFragment(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.RenderNotifications(buf, notes)
	})
}

func (h *httpServer) writePage(w http.ResponseWriter, r *http.Request, status int, d view.Display, result *render.Finance) {
	var notes []notify.Notification
	if client := h.lookupClient(r); client != "" {
		notes = h.notes.List(client)
	}
	page := render.Page{
		Year:          h.now().Year(),
		Criteria:      d.Criteria,
		Dropdowns:     d.Dropdowns,
		Carousel:      render.NewCarousel(d.Carousel, d.Vehicles, d.Criteria),
		Finance:       result,
		Notifications: notes,
	}
	h.writeFragment(w, status, func(buf *bytes.Buffer) error {
		return h.renderer.RenderPage(buf, page)
	})
}

func (h *httpServer) writeFragment(w http.ResponseWriter, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		h.serverError(w, "render", err)
		return
	}
	w.Header().Add("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *httpServer) serverError(w http.ResponseWriter, what string, err error) {
	h.log.WithError(err).Errorf("%s failed", what)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(err.Error()))
}

func (h *httpServer) details(v dal.Vehicle) string {
	return fmt.Sprintf("%s\nPrice: %s\nYear: %d\nMileage: %d km\nFuel: %s\nTransmission: %s",
		v.Name, h.renderer.FormatPrice(v.Price), v.Year, v.Mileage, v.FuelType, v.Transmission)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
	}
}

// parseForm reads a size-limited form body. It answers 400 itself and
// reports false when the body is unreadable or too large.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return false
	}
	return true
}

func slideIndex(vars url.Values) int {
	i, err := strconv.Atoi(vars.Get("slide"))
	if err != nil {
		return 0
	}
	return i
}

// wantsFragment is true for script-driven requests that swap part of the page
func wantsFragment(r *http.Request) bool {
	return r.URL.Query().Get("fragment") == "1" || r.Header.Get("HX-Request") == "true"
}

func validateVehicleID(w http.ResponseWriter, vars map[string]string) (int, error) {
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return 0, err
	}
	if id < 0 {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(fmt.Sprintf("vehicle id must be a positive number: %d", id)))
		return 0, errors.New("vehicle id must be a positive number")
	}
	return id, nil
}

func validateDirection(w http.ResponseWriter, vars map[string]string) (bool, error) {
	switch vars["dir"] {
	case "next":
		return true, nil
	case "prev":
		return false, nil
	}
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte(fmt.Sprintf("direction must be prev or next: %q", vars["dir"])))
	return false, errors.New("direction must be prev or next")
}
