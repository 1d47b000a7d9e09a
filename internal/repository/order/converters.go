package order

import (
	"fulfillment/internal/entities"
	"github.com/shopspring/decimal"
)

func FromDomain(o *entities.Order) *OrderDB {
	if o == nil {
		return nil
	}
	return &OrderDB{
		ID:                   o.ID,
		PatientID:            o.PatientID,
		RequiresPrescription: o.RequiresPrescription,
		PrescriptionRef:      o.PrescriptionRef,
		Subtotal:             o.Pricing.Subtotal,
		DeliveryFees:         o.Pricing.DeliveryFees,
		Total:                o.Pricing.Total,
		DeliveryAddress:      o.DeliveryAddress,
		Status:               o.Status.String(),
		AssignedDriverID:     o.AssignedDriverID,
		RejectionReason:      o.RejectionReason,
		Unread:               o.Unread,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
		Delivery:             fromDomainDelivery(o.Delivery),
	}
}

func fromDomainDelivery(l *entities.DeliveryLeg) DeliveryDB {
	if l == nil {
		return DeliveryDB{}
	}
	status := l.Status.String()
	dropoff := l.DropoffLocation
	return DeliveryDB{
		Status:          &status,
		PickupLocations: l.PickupLocations,
		DropoffLocation: &dropoff,
		Fee:             decimal.NewNullDecimal(l.Fee),
		DriverID:        l.DriverID,
		Attempt:         l.Attempt,
		AssignedAt:      l.AssignedAt,
		PickedUpAt:      l.PickedUpAt,
		InTransitAt:     l.InTransitAt,
		DeliveredAt:     l.DeliveredAt,
		FailedAt:        l.FailedAt,
		FailureReason:   l.FailureReason,
	}
}

func ToDomain(o *OrderDB, items []OrderItemDB, history []StatusEntryDB) *entities.Order {
	if o == nil {
		return nil
	}
	return &entities.Order{
		ID:                   o.ID,
		PatientID:            o.PatientID,
		Items:                ToDomainItems(items),
		RequiresPrescription: o.RequiresPrescription,
		PrescriptionRef:      o.PrescriptionRef,
		Pricing: entities.Pricing{
			Subtotal:     o.Subtotal,
			DeliveryFees: o.DeliveryFees,
			Total:        o.Total,
		},
		DeliveryAddress:  o.DeliveryAddress,
		Status:           entities.OrderStatusType(o.Status),
		StatusHistory:    ToDomainHistory(history),
		AssignedDriverID: o.AssignedDriverID,
		Delivery:         toDomainDelivery(&o.Delivery),
		RejectionReason:  o.RejectionReason,
		Unread:           o.Unread,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func toDomainDelivery(d *DeliveryDB) *entities.DeliveryLeg {
	if d == nil || d.Status == nil {
		return nil
	}

	leg := &entities.DeliveryLeg{
		Status:          entities.DeliveryStatusType(*d.Status),
		PickupLocations: d.PickupLocations,
		Fee:             d.Fee.Decimal,
		DriverID:        d.DriverID,
		Attempt:         d.Attempt,
		AssignedAt:      d.AssignedAt,
		PickedUpAt:      d.PickedUpAt,
		InTransitAt:     d.InTransitAt,
		DeliveredAt:     d.DeliveredAt,
		FailedAt:        d.FailedAt,
		FailureReason:   d.FailureReason,
	}
	if d.DropoffLocation != nil {
		leg.DropoffLocation = *d.DropoffLocation
	}
	return leg
}

func FromDomainItems(orderID string, items []entities.OrderItem) []OrderItemDB {
	result := make([]OrderItemDB, len(items))
	for i, item := range items {
		result[i] = OrderItemDB{
			OrderID:         orderID,
			Position:        i + 1,
			MedicineID:      item.MedicineID,
			MedicineName:    item.MedicineName,
			PharmacyID:      item.PharmacyID,
			PharmacyName:    item.PharmacyName,
			PharmacyAddress: item.PharmacyAddress,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			FulfillmentMode: item.FulfillmentMode.String(),
		}
	}
	return result
}

func ToDomainItems(items []OrderItemDB) []entities.OrderItem {
	result := make([]entities.OrderItem, len(items))
	for i, item := range items {
		result[i] = entities.OrderItem{
			MedicineID:      item.MedicineID,
			MedicineName:    item.MedicineName,
			PharmacyID:      item.PharmacyID,
			PharmacyName:    item.PharmacyName,
			PharmacyAddress: item.PharmacyAddress,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			FulfillmentMode: entities.FulfillmentMode(item.FulfillmentMode),
		}
	}
	return result
}

func ToDomainHistory(history []StatusEntryDB) []entities.StatusEntry {
	result := make([]entities.StatusEntry, len(history))
	for i, entry := range history {
		result[i] = entities.StatusEntry{
			Seq:    entry.Seq,
			Status: entities.OrderStatusType(entry.Status),
			At:     entry.At,
			Note:   entry.Note,
		}
	}
	return result
}
