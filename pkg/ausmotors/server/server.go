package server

import (
	"net/http"
	"time"

	"github.com/ausmotors/storefront/pkg/ausmotors/notify"
	"github.com/ausmotors/storefront/pkg/ausmotors/render"
	"github.com/ausmotors/storefront/pkg/ausmotors/store"
	"github.com/ausmotors/storefront/pkg/ausmotors/view"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Deps are the components the storefront handlers read and update
type Deps struct {
	Store       *store.Store
	View        *view.View
	Renderer    *render.Renderer
	Notes       *notify.Hub
	Sessions    sessions.Store
	Logger      *logrus.Logger
	ServiceName string
}

// NewSessionStore returns the cookie store that identifies visitors. An
// empty key is replaced by a random one, so sessions do not survive a restart.
func NewSessionStore(key []byte) *sessions.CookieStore {
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}
	cs := sessions.NewCookieStore(key)
	cs.Options.HttpOnly = true
	cs.Options.SameSite = http.SameSiteLaxMode
	return cs
}

// NewHTTPServer returns a new HTTP server
func NewHTTPServer(addr string, deps Deps) *http.Server {
	server := newHTTPServer(deps)
	return &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(server.router(), deps.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type httpServer struct {
	log      *logrus.Logger
	store    *store.Store
	view     *view.View
	renderer *render.Renderer
	notes    *notify.Hub
	sessions sessions.Store
	now      func() time.Time
}

func newHTTPServer(deps Deps) *httpServer {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.New()
	}
	notes := deps.Notes
	if notes == nil {
		notes = notify.NewHub(notify.DefaultTTL, logger)
	}
	var sessionStore sessions.Store = deps.Sessions
	if sessionStore == nil {
		sessionStore = NewSessionStore(nil)
	}
	return &httpServer{
		log:      logger,
		store:    deps.Store,
		view:     deps.View,
		renderer: deps.Renderer,
		notes:    notes,
		sessions: sessionStore,
		now:      time.Now,
	}
}

func (h *httpServer) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.recoverPanics, h.logRequests)

	r.HandleFunc("/", h.GetPage).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.GetHealth).Methods(http.MethodGet)
	r.HandleFunc("/vehicles", h.GetVehicles).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/{id}", h.GetVehicle).Methods(http.MethodGet)
	r.HandleFunc("/models", h.GetModels).Methods(http.MethodGet)
	r.HandleFunc("/finance", h.PostFinance).Methods(http.MethodPost)
	r.HandleFunc("/carousel", h.GetCarousel).Methods(http.MethodGet)
	r.HandleFunc("/carousel/{dir}", h.PostCarousel).Methods(http.MethodPost)
	r.HandleFunc("/newsletter", h.PostNewsletter).Methods(http.MethodPost)
	r.HandleFunc("/notifications", h.GetNotifications).Methods(http.MethodGet)
	r.HandleFunc("/notifications/{id}", h.DismissNotification).Methods(http.MethodDelete, http.MethodPost)
	return r
}
