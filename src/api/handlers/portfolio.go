package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	portfolio, err := h.Controller.Portfolio(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) GetPortfolioDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	details, err := h.Controller.PortfolioDetails(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, details, http.StatusOK)
}

func (h *Handler) GetPortfolioHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	rng := r.URL.Query().Get("range")
	basis := r.URL.Query().Get("basis")

	series, err := h.Controller.PortfolioHistory(ctx, rng, basis)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, series, http.StatusOK)
}
