package catalog_medicine_put

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
	var medicineDTO dto.MedicineUpsert
	err := json.NewDecoder(r.Body).Decode(&medicineDTO)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	medicine, err := h.service.UpsertMedicine(r.Context(), dto.ToMedicine(mux.Vars(r)["id"], medicineDTO))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromMedicine(medicine))
}
