package dispatch_advance_post

import (
	"encoding/json"
	"net/http"

	"fulfillment/internal/entities"
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
	var advanceDTO dto.DeliveryAdvance
	err := json.NewDecoder(r.Body).Decode(&advanceDTO)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	to := entities.DeliveryStatusType(advanceDTO.Status)
	claim, err := h.service.Advance(r.Context(), advanceDTO.DriverID, mux.Vars(r)["id"], to)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromDeliveryClaim(claim))
}
