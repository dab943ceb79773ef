package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"tradeledger/src/controllers"
	"tradeledger/src/utils"
)

type Handler struct {
	Controller controllers.IController
}

func NewHandler(controller controllers.IController) *Handler {
	return &Handler{Controller: controller}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps a typed error to its response code and {error, kind}
// body. Anything untyped is logged with full context and reported as a
// generic 500; internal error text never reaches the client.
func (h *Handler) HandleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, utils.KindUpstream, "request timed out"))
	case errors.As(err, &httpErr):
		if httpErr.Code >= http.StatusInternalServerError {
			utils.LoggerFromContext(r.Context()).WithError(err).WithField("kind", httpErr.Kind).Error("request failed")
		}
		utils.WriteError(w, httpErr)
	default:
		utils.LoggerFromContext(r.Context()).WithError(err).Error("unhandled error")
		utils.WriteError(w, utils.InternalServerError("Internal Server Error"))
	}
}
