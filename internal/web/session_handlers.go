package web

import (
	"encoding/json"
	"net/http"
	"strings"
)

// sessionState is the wire form of the gate's state.
type sessionState struct {
	Privileged      bool `json:"privileged"`
	IncorrectSecret bool `json:"incorrectSecret"`
}

func (s *Server) sessionState() sessionState {
	return sessionState{
		Privileged:      s.gate.Privileged(),
		IncorrectSecret: s.gate.MismatchSignal(),
	}
}

// handleSession serves /api/session: the access gate's entry points.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		apiJSON(w, s.sessionState(), http.StatusOK)
	case http.MethodPost:
		s.login(w, r)
	case http.MethodDelete:
		s.gate.Logout()
		apiJSON(w, s.sessionState(), http.StatusOK)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Secret string `json:"secret"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Secret) == "" {
		apiError(w, "secret is required", http.StatusBadRequest)
		return
	}

	if !s.gate.Submit(req.Secret) {
		// A mismatch is a defined transient state, reported alongside
		// the 401 so clients can show and auto-clear it.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if err := json.NewEncoder(w).Encode(s.sessionState()); err != nil {
			http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
		}
		return
	}

	apiJSON(w, s.sessionState(), http.StatusOK)
}
