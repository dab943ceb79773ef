package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ticker := chi.URLParam(r, "ticker")
	quote, err := h.Controller.StockQuote(ctx, ticker)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, quote, http.StatusOK)
}

func (h *Handler) GetStockHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	ticker := chi.URLParam(r, "ticker")
	rng := r.URL.Query().Get("range")

	bars, err := h.Controller.StockHistory(ctx, ticker, rng)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, bars, http.StatusOK)
}
