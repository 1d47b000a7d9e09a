package review_get

import (
	"net/http"
	"strings"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/internal/handlers/rest/response"
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
	// ?status=pending,reviewing; без параметра очередь по умолчанию
	var statuses []entities.OrderStatusType
	for _, raw := range strings.Split(r.URL.Query().Get("status"), ",") {
		raw = strings.TrimSpace(raw)
		if raw != "" {
			statuses = append(statuses, entities.OrderStatusType(raw))
		}
	}

	items, err := h.service.ListByStatus(r.Context(), statuses)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromReviewItems(items))
}
