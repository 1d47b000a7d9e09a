package catalog_changed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
	"github.com/IBM/sarama"
)

type Handler struct {
	catalogService           Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, catalogService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		catalogService:           catalogService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("catalog.changed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			if shouldExit := h.messageProcessing(sess, message); shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("catalog.changed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать без коммита offset.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event changedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("catalog.changed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("event", event.EventID),
		logger.NewField("entity", event.Entity),
		logger.NewField("id", event.ID),
		logger.NewField("offset", message.Offset),
	)
	msgLog.Info("catalog.changed processing")

	if err := h.apply(ctx, event); err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("catalog.changed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, errUnknownEntity):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("catalog.changed handler unknown entity")

		case errors.Is(err, entities.ErrValidation):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("catalog.changed handler invalid catalog entry")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("catalog.changed handler failed to update catalog")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("catalog.changed: processed")

	sess.MarkMessage(message, "")
	return false
}

func (h *Handler) apply(ctx context.Context, event changedEvent) error {
	switch event.Entity {
	case entityMedicine:
		_, err := h.catalogService.UpsertMedicine(ctx, event.toMedicine())
		return err
	case entityPharmacy:
		_, err := h.catalogService.UpsertPharmacy(ctx, event.toPharmacy())
		return err
	default:
		return fmt.Errorf("%w: %q", errUnknownEntity, event.Entity)
	}
}
