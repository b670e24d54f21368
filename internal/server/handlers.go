package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sw33tLie/freedrops/internal/utils"
	"github.com/sw33tLie/freedrops/pkg/offers"
	"github.com/sw33tLie/freedrops/pkg/storage"
)

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)

type SubscribeRequest struct {
	Email  string `json:"email"`
	Action string `json:"action"`
}

type apiMessage struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		writeJSON(w, http.StatusMethodNotAllowed, apiMessage{"Method not allowed"})
		return
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiMessage{"Invalid JSON body"})
		return
	}
	if req.Action == "" {
		req.Action = actionSubscribe
	}

	email, err := storage.NormalizeEmail(req.Email)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiMessage{"Invalid email"})
		return
	}

	switch req.Action {
	case actionSubscribe:
		_, err = s.Subs.Add(r.Context(), email)
	case actionUnsubscribe:
		_, err = s.Subs.Remove(r.Context(), email)
	default:
		writeJSON(w, http.StatusBadRequest, apiMessage{"Invalid action"})
		return
	}
	if err != nil {
		if errors.Is(err, storage.ErrInvalidEmail) {
			writeJSON(w, http.StatusBadRequest, apiMessage{"Invalid email"})
			return
		}
		utils.Log.Errorf("Subscriber update failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiMessage{"Server error"})
		return
	}

	writeJSON(w, http.StatusOK, apiMessage{"Successfully " + req.Action + "d " + email})
}

func (s *Server) handleDrops(w http.ResponseWriter, r *http.Request) {
	list, err := s.Store.LoadExport()
	if err != nil {
		utils.Log.Warnf("Reading export: %v", err)
		list = []offers.Offer{}
	}
	writeJSON(w, http.StatusOK, list)
}
