package http

import (
	"net/http"
)

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	c, err := req.toDomain("")
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.finance.CreateCard(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	c, err := req.toDomain(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.finance.UpdateCard(r.Context(), c); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusOK, cardToView(c))
}

// handleDeleteCard removes only the card; purchases on it stay orphaned
// and keep billing through the fallback cycle.
func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteCard(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	cfg, err := req.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.finance.UpdateConfig(r.Context(), cfg); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}
