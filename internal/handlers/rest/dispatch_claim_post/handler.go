package dispatch_claim_post

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
	var claimDTO dto.DeliveryClaimRequest
	err := json.NewDecoder(r.Body).Decode(&claimDTO)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	claim, err := h.service.Claim(r.Context(), claimDTO.DriverID, mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromDeliveryClaim(claim))
}
