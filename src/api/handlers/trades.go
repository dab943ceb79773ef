package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tradeledger/src/schemas"
	"tradeledger/src/utils"
)

func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	h.executeTrade(w, r, true)
}

func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	h.executeTrade(w, r, false)
}

func (h *Handler) executeTrade(w http.ResponseWriter, r *http.Request, buy bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req schemas.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, r, utils.ValidationError("invalid request body"))
		return
	}
	if req.Ticker == "" || req.Quantity == 0 {
		h.HandleErrors(w, r, utils.ValidationError("ticker and quantity are required"))
		return
	}

	var resp *schemas.TradeResponse
	var err error
	if buy {
		resp, err = h.Controller.Buy(ctx, req.Ticker, req.Quantity)
	} else {
		resp, err = h.Controller.Sell(ctx, req.Ticker, req.Quantity)
	}
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, resp, http.StatusCreated)
}
