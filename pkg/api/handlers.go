package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"customerapi/pkg/customer"
	"customerapi/pkg/otel"
)

// listCustomersHandler returns every stored customer.
// @Summary List customers
// @Produce json
// @Success 200 {array} customer.Customer
// @Router /customers [get]
func (s *Server) listCustomersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listCustomersHandler")
	defer span.End()

	customers, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error(ctx, "list customers", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

// createCustomerHandler stores a new customer. The guid comes from the
// client; a guid that is already taken is rejected.
// @Summary Create customer
// @Accept json
// @Produce json
// @Param customer body customer.Customer true "Customer"
// @Success 201 {object} customer.Customer
// @Router /customers [post]
func (s *Server) createCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createCustomerHandler")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var c customer.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), decodeStatus(err))
		return
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, customer.ErrExists) {
			http.Error(w, "customer already exists", http.StatusBadRequest)
			return
		}
		s.log.Error(ctx, "create customer", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// getCustomerHandler retrieves a single customer by guid.
// @Summary Get customer
// @Produce json
// @Param guid path string true "Customer GUID"
// @Success 200 {object} customer.Customer
// @Router /customers/{guid} [get]
func (s *Server) getCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCustomerHandler")
	defer span.End()

	guid := mux.Vars(r)["guid"]
	c, err := s.repo.Get(ctx, guid)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error(ctx, "get customer", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// updateCustomerHandler replaces a stored customer wholesale. The record to
// replace is selected by the guid in the request body; the path segment is
// routing surface only.
// @Summary Update customer
// @Accept json
// @Produce json
// @Param guid path string true "Customer GUID"
// @Param customer body customer.Customer true "Customer"
// @Success 200 {object} customer.Customer
// @Router /customers/{guid} [put]
func (s *Server) updateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateCustomerHandler")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var c customer.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), decodeStatus(err))
		return
	}
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error(ctx, "update customer", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// deleteCustomerHandler removes a customer by guid.
// @Summary Delete customer
// @Param guid path string true "Customer GUID"
// @Success 204
// @Router /customers/{guid} [delete]
func (s *Server) deleteCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteCustomerHandler")
	defer span.End()

	guid := mux.Vars(r)["guid"]
	if err := s.repo.Delete(ctx, guid); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error(ctx, "delete customer", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeStatus distinguishes an over-limit body from any other decode
// failure.
func decodeStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
