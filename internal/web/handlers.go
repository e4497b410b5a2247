package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/portalsur/portalsur/internal/property"
	"github.com/portalsur/portalsur/internal/store"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// propertyPayload is the wire form of a property. The legacy "status"
// field ("Published"/"Draft") is accepted as an alternative to
// isPublished; only the boolean is stored.
type propertyPayload struct {
	property.Property
	Status *string `json:"status,omitempty"`
}

func decodePayload(r *http.Request) (property.Property, error) {
	var payload propertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return property.Property{}, fmt.Errorf("invalid JSON body")
	}

	p := payload.Property
	if payload.Status != nil {
		published, err := property.ParseStatus(*payload.Status)
		if err != nil {
			return property.Property{}, err
		}
		p.IsPublished = published
	}
	return p, nil
}

// handleProperties serves /api/properties: list, create, and delete
// (delete addresses its target via the id query parameter).
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listProperties(w, r)
	case http.MethodPost:
		s.createProperty(w, r)
	case http.MethodDelete:
		s.deleteProperty(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handlePropertyByID serves PUT /api/properties/{id}.
func (s *Server) handlePropertyByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/properties/")
	if id == "" || strings.Contains(id, "/") {
		apiError(w, "invalid property id", http.StatusBadRequest)
		return
	}
	s.updateProperty(w, r, id)
}

// parseCriteria reads the filter query parameters. Absent parameters
// leave their dimension unset.
func parseCriteria(r *http.Request) (property.Criteria, error) {
	q := r.URL.Query()
	c := property.Criteria{
		Location: q.Get("location"),
		Type:     q.Get("type"),
	}

	if v := q.Get("min_bedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c, fmt.Errorf("min_bedrooms must be a non-negative integer")
		}
		c.MinBedrooms = n
	}
	if v := q.Get("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return c, fmt.Errorf("min_price must be a non-negative number")
		}
		c.MinPrice = f
	}
	if v := q.Get("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return c, fmt.Errorf("max_price must be a non-negative number")
		}
		c.MaxPrice = f
	}

	return c, nil
}

// listProperties runs the catalog query for the current viewer.
func (s *Server) listProperties(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := s.store.List(r.Context())
	if err != nil {
		apiError(w, fmt.Sprintf("listing properties: %v", err), http.StatusInternalServerError)
		return
	}

	privileged := s.gate.Privileged()
	results := property.Query(records, criteria, privileged)
	if !privileged {
		for i := range results {
			results[i] = results[i].Redacted()
		}
	}

	apiJSON(w, results, http.StatusOK)
}

// requirePrivileged rejects the request unless the gate is open.
func (s *Server) requirePrivileged(w http.ResponseWriter) bool {
	if !s.gate.Privileged() {
		apiError(w, "privileged session required", http.StatusForbidden)
		return false
	}
	return true
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	if !s.requirePrivileged(w) {
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := property.Validate(p); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := s.store.Create(r.Context(), p)
	if err != nil {
		apiError(w, fmt.Sprintf("creating property: %v", err), http.StatusInternalServerError)
		return
	}

	apiJSON(w, created, http.StatusCreated)
}

func (s *Server) updateProperty(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requirePrivileged(w) {
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if p.ID != "" && p.ID != id {
		apiError(w, "body id does not match URL", http.StatusBadRequest)
		return
	}
	p.ID = id

	if err := property.Validate(p); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := s.store.Update(r.Context(), p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apiError(w, "property not found", http.StatusNotFound)
			return
		}
		apiError(w, fmt.Sprintf("updating property: %v", err), http.StatusInternalServerError)
		return
	}

	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) deleteProperty(w http.ResponseWriter, r *http.Request) {
	if !s.requirePrivileged(w) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		apiError(w, "id query parameter is required", http.StatusBadRequest)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apiError(w, "property not found", http.StatusNotFound)
			return
		}
		apiError(w, fmt.Sprintf("deleting property: %v", err), http.StatusInternalServerError)
		return
	}

	apiJSON(w, map[string]interface{}{"id": id, "removed": true}, http.StatusOK)
}
