package server

import (
	"encoding/hex"
	"net/http"

	"github.com/gorilla/securecookie"
)

const (
	sessionName = "ausmotors"
	clientKey   = "client"
)

// lookupClient returns the visitor id carried by the request, or "" when the
// visitor has no session yet
func (h *httpServer) lookupClient(r *http.Request) string {
	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		return ""
	}
	id, _ := session.Values[clientKey].(string)
	return id
}

// clientID returns the visitor id, issuing a session cookie on first use.
// It must run before the response header is written.
func (h *httpServer) clientID(w http.ResponseWriter, r *http.Request) string {
	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		h.log.WithError(err).Debug("Replacing unreadable session")
	}
	if id, ok := session.Values[clientKey].(string); ok && id != "" {
		return id
	}

	id := hex.EncodeToString(securecookie.GenerateRandomKey(16))
	session.Values[clientKey] = id
	if err := session.Save(r, w); err != nil {
		h.log.WithError(err).Warn("Could not save session")
	}
	return id
}
