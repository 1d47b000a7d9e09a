package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Config struct {
	PerPharmacyFee decimal.Decimal
}

type Ledger struct {
	repository     Repository
	catalog        CatalogService
	txManager      TxManager
	retrier        Retrier
	perPharmacyFee decimal.Decimal
}

func New(
	repository Repository,
	catalog CatalogService,
	txManager TxManager,
	retrier Retrier,
	config Config,
) *Ledger {
	return &Ledger{
		repository:     repository,
		catalog:        catalog,
		txManager:      txManager,
		retrier:        retrier,
		perPharmacyFee: config.PerPharmacyFee,
	}
}

// CreateOrder оформляет заказ из корзины. Цены и состав берутся из каталога,
// суммы от клиента не принимаются.
func (l *Ledger) CreateOrder(ctx context.Context, checkout entities.Checkout) (*entities.Order, error) {
	if err := validateCheckout(checkout); err != nil {
		return nil, err
	}

	items := make([]entities.OrderItem, 0, len(checkout.Items))
	requiresPrescription := false
	for _, cartItem := range checkout.Items {
		item, prescription, err := l.resolveItem(ctx, cartItem)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		requiresPrescription = requiresPrescription || prescription
	}

	order := entities.NewOrder(
		uuid.NewString(),
		checkout.PatientID,
		items,
		strings.TrimSpace(checkout.DeliveryAddress),
		l.perPharmacyFee,
		time.Now().UTC(),
	)
	order.RequiresPrescription = requiresPrescription

	err := l.inTx(ctx, func(ctx context.Context) error {
		return l.repository.Create(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	metrics.OrderTransitionsTotal.WithLabelValues(entities.OrderPending.String()).Inc()
	return &order, nil
}

func (l *Ledger) GetOrder(ctx context.Context, id string) (*entities.Order, error) {
	if !isValidID(id) {
		return nil, ErrInvalidOrderID
	}
	return l.repository.GetByID(ctx, id)
}

func (l *Ledger) ListPatientOrders(ctx context.Context, patientID string) ([]entities.Order, error) {
	if !isValidID(patientID) {
		return nil, ErrInvalidPatientID
	}

	orders, err := l.repository.List(ctx, entities.OrderFilter{PatientID: &patientID})
	if err != nil {
		return nil, fmt.Errorf("list patient orders: %w", err)
	}
	return orders, nil
}

// AppendStatus ручные шаги аптеки по таблице переходов: preparing, ready, completed.
// Статусы, у которых есть свои проверки (рецепт, причина отказа, состояние доставки),
// выставляют только review и dispatch. Пометку "не прочитано" только ставит.
func (l *Ledger) AppendStatus(ctx context.Context, id string, status entities.OrderStatusType, note string) (*entities.Order, error) {
	if !isValidID(id) {
		return nil, ErrInvalidOrderID
	}
	if err := validateManualStatus(status); err != nil {
		return nil, err
	}

	return l.mutate(ctx, id, func(order *entities.Order) (bool, error) {
		if err := order.Transition(status, time.Now().UTC(), strings.TrimSpace(note)); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (l *Ledger) MarkRead(ctx context.Context, id string) error {
	if !isValidID(id) {
		return ErrInvalidOrderID
	}

	_, err := l.mutate(ctx, id, func(order *entities.Order) (bool, error) {
		if !order.Unread {
			return false, nil
		}
		order.Unread = false
		return true, nil
	})
	return err
}

func (l *Ledger) IsUnread(ctx context.Context, id string) (bool, error) {
	order, err := l.GetOrder(ctx, id)
	if err != nil {
		return false, err
	}
	return order.Unread, nil
}

// AttachPrescription сохраняет ссылку на рецепт. Повтор с той же ссылкой ничего не меняет.
func (l *Ledger) AttachPrescription(ctx context.Context, id, ref string) (*entities.Order, error) {
	if !isValidID(id) {
		return nil, ErrInvalidOrderID
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrInvalidPrescriptionRef
	}

	return l.mutate(ctx, id, func(order *entities.Order) (bool, error) {
		if order.PrescriptionRef != nil && *order.PrescriptionRef == ref {
			return false, nil
		}
		if !order.Status.InReview() {
			return false, ErrPrescriptionLocked
		}

		order.PrescriptionRef = &ref
		order.AddNote(time.Now().UTC(), "prescription attached")
		return true, nil
	})
}

func (l *Ledger) resolveItem(ctx context.Context, cartItem entities.CheckoutItem) (entities.OrderItem, bool, error) {
	medicine, err := l.catalog.ResolveMedicine(ctx, cartItem.MedicineID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return entities.OrderItem{}, false, fmt.Errorf("%w: %s", ErrUnknownMedicine, cartItem.MedicineID)
		}
		return entities.OrderItem{}, false, fmt.Errorf("resolve medicine: %w", err)
	}

	pharmacy, err := l.catalog.ResolvePharmacy(ctx, cartItem.PharmacyID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return entities.OrderItem{}, false, fmt.Errorf("%w: %s", ErrUnknownPharmacy, cartItem.PharmacyID)
		}
		return entities.OrderItem{}, false, fmt.Errorf("resolve pharmacy: %w", err)
	}

	return entities.OrderItem{
		MedicineID:      medicine.ID,
		MedicineName:    medicine.Name,
		PharmacyID:      pharmacy.ID,
		PharmacyName:    pharmacy.Name,
		PharmacyAddress: pharmacy.Address,
		Quantity:        cartItem.Quantity,
		UnitPrice:       medicine.UnitPrice,
		FulfillmentMode: cartItem.FulfillmentMode,
	}, medicine.RequiresPrescription, nil
}

// mutate читает заказ, применяет fn и сохраняет, если fn вернула changed.
// Весь цикл повторяется при конфликте транзакций.
func (l *Ledger) mutate(ctx context.Context, id string, fn func(order *entities.Order) (bool, error)) (*entities.Order, error) {
	var (
		result *entities.Order
		from   entities.OrderStatusType
	)
	err := l.inTx(ctx, func(ctx context.Context) error {
		order, err := l.repository.GetByID(ctx, id)
		if err != nil {
			return err
		}

		from = order.Status
		changed, err := fn(order)
		if err != nil {
			return err
		}

		if changed {
			if err := l.repository.Save(ctx, *order); err != nil {
				return fmt.Errorf("save order: %w", err)
			}
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status != from {
		metrics.OrderTransitionsTotal.WithLabelValues(result.Status.String()).Inc()
	}
	return result, nil
}

func (l *Ledger) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return l.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return l.txManager.Do(ctx, fn)
	})
}
