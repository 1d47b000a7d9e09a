package dispatch_fail_post

import (
	"encoding/json"
	"net/http"

	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/internal/handlers/rest/response"
	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var failDTO dto.DeliveryFail
	err := json.NewDecoder(r.Body).Decode(&failDTO)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	claim, err := h.service.Fail(r.Context(), failDTO.DriverID, mux.Vars(r)["id"], failDTO.Reason)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromDeliveryClaim(claim))
}
