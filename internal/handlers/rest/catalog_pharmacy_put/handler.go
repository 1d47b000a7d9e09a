package catalog_pharmacy_put

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
	var pharmacyDTO dto.PharmacyUpsert
	err := json.NewDecoder(r.Body).Decode(&pharmacyDTO)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	pharmacy, err := h.service.UpsertPharmacy(r.Context(), dto.ToPharmacy(mux.Vars(r)["id"], pharmacyDTO))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromPharmacy(pharmacy))
}
