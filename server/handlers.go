package server

import (
	"net/http"

	"github.com/theoremus-urban-solutions/transit-arrivals/formatter"
)

const (
	arrivalsCacheKey = "arrivals"
	arrivalsError    = "Failed to fetch arrival data"
)

func (s *Server) handleArrivals(w http.ResponseWriter, r *http.Request) {
	if body, ok := s.cached(); ok {
		s.writeJSON(w, http.StatusOK, body)
		return
	}

	res, err := s.svc.GetAllArrivals(r.Context())
	if err != nil {
		s.logger.Printf("arrivals request %s failed: %v", w.Header().Get(RequestIDHeader), err)
		s.writeError(w, http.StatusInternalServerError, arrivalsError)
		return
	}

	body, err := s.builder.BuildJSON(formatter.BuildPayload(res))
	if err != nil {
		s.logger.Printf("encode arrivals: %v", err)
		s.writeError(w, http.StatusInternalServerError, arrivalsError)
		return
	}
	if s.cache != nil {
		_ = s.cache.Set(arrivalsCacheKey, body)
	}
	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body, err := s.builder.BuildJSON(formatter.NewHealthResponse(s.now()))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) cached() ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	v, err := s.cache.Get(arrivalsCacheKey)
	if err != nil {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := s.builder.BuildJSON(formatter.ErrorResponse{Error: msg})
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
