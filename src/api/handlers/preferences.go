package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tradeledger/src/schemas"
	"tradeledger/src/utils"
)

func (h *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	key := r.URL.Query().Get("key")
	userID := r.URL.Query().Get("user_id")

	preference, err := h.Controller.GetPreference(ctx, userID, key)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, preference, http.StatusOK)
}

func (h *Handler) PutPreference(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req schemas.PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, r, utils.ValidationError("invalid request body"))
		return
	}

	if err := h.Controller.SetPreference(ctx, req.UserID, req.Key, req.Value); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, map[string]string{"status": "saved"}, http.StatusOK)
}
