package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router returns the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID)
	r.Use(cors)

	r.HandleFunc("/api/arrivals", s.handleArrivals).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)

	if s.staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.staticDir))).Methods(http.MethodGet, http.MethodHead)
	}
	return r
}
