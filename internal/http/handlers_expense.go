package http

import (
	"fmt"
	"net/http"

	"financas/internal/billing"
)

type createdResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	e, err := req.toDomain("")
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.finance.CreateExpense(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if billing.IsVirtualID(id) {
		writeBadRequest(w, fmt.Errorf("projected entries cannot be edited; create a real entry for the month instead"))
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	e, err := req.toDomain(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.finance.UpdateExpense(r.Context(), e); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusOK, expenseToView(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if billing.IsVirtualID(id) {
		writeBadRequest(w, fmt.Errorf("projected entries cannot be deleted; close the recurring series instead"))
		return
	}

	if err := s.finance.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}
