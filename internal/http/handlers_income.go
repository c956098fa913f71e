package http

import (
	"fmt"
	"net/http"

	"financas/internal/billing"
)

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	i, err := req.toDomain("")
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.finance.CreateIncome(r.Context(), i)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if billing.IsVirtualID(id) {
		writeBadRequest(w, fmt.Errorf("projected entries cannot be edited; create a real entry for the month instead"))
		return
	}

	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	i, err := req.toDomain(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.finance.UpdateIncome(r.Context(), i); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusOK, incomeToView(i))
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if billing.IsVirtualID(id) {
		writeBadRequest(w, fmt.Errorf("projected entries cannot be deleted; close the recurring series instead"))
		return
	}

	if err := s.finance.DeleteIncome(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}
