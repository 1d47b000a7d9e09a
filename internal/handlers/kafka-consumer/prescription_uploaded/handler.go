package prescription_uploaded

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
	"github.com/IBM/sarama"
)

type Handler struct {
	ledgerService            Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, ledgerService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		ledgerService:            ledgerService,
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
				h.log.Info("prescription.uploaded: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			if shouldExit := h.messageProcessing(sess, message); shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("prescription.uploaded: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать без коммита offset.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event uploadedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("prescription.uploaded handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("event", event.EventID),
		logger.NewField("order", event.OrderID),
		logger.NewField("prescription", event.PrescriptionRef),
		logger.NewField("offset", message.Offset),
	)
	msgLog.Info("prescription.uploaded processing")

	order, err := h.ledgerService.AttachPrescription(ctx, event.OrderID, event.PrescriptionRef)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("prescription.uploaded handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, entities.ErrNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("prescription.uploaded handler order not found")

		case errors.Is(err, entities.ErrInvalidTransition):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("prescription.uploaded handler order is no longer under review")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("prescription.uploaded handler failed to attach prescription")
		}
		sess.MarkMessage(message, "")
		return false
	}

	h.log.With(
		logger.NewField("order", order.ID),
		logger.NewField("status", order.Status.String()),
		logger.NewField("offset", message.Offset),
	).Info("prescription.uploaded: processed")

	sess.MarkMessage(message, "")
	return false
}
