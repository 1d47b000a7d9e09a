package kv

import (
	"fulfillment/internal/entities"
)

func FromDomainOrder(o *entities.Order) *OrderRecord {
	if o == nil {
		return nil
	}

	items := make([]OrderItemRecord, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemRecord{
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

	history := make([]StatusRecord, len(o.StatusHistory))
	for i, entry := range o.StatusHistory {
		history[i] = StatusRecord{
			Seq:    entry.Seq,
			Status: entry.Status.String(),
			At:     entry.At,
			Note:   entry.Note,
		}
	}

	return &OrderRecord{
		ID:                   o.ID,
		PatientID:            o.PatientID,
		Items:                items,
		RequiresPrescription: o.RequiresPrescription,
		PrescriptionRef:      o.PrescriptionRef,
		Subtotal:             o.Pricing.Subtotal,
		DeliveryFees:         o.Pricing.DeliveryFees,
		Total:                o.Pricing.Total,
		DeliveryAddress:      o.DeliveryAddress,
		Status:               o.Status.String(),
		History:              history,
		AssignedDriverID:     o.AssignedDriverID,
		Delivery:             fromDomainDelivery(o.Delivery),
		RejectionReason:      o.RejectionReason,
		Unread:               o.Unread,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

func ToDomainOrder(r *OrderRecord) *entities.Order {
	if r == nil {
		return nil
	}

	items := make([]entities.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = entities.OrderItem{
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

	history := make([]entities.StatusEntry, len(r.History))
	for i, entry := range r.History {
		history[i] = entities.StatusEntry{
			Seq:    entry.Seq,
			Status: entities.OrderStatusType(entry.Status),
			At:     entry.At,
			Note:   entry.Note,
		}
	}

	return &entities.Order{
		ID:                   r.ID,
		PatientID:            r.PatientID,
		Items:                items,
		RequiresPrescription: r.RequiresPrescription,
		PrescriptionRef:      r.PrescriptionRef,
		Pricing: entities.Pricing{
			Subtotal:     r.Subtotal,
			DeliveryFees: r.DeliveryFees,
			Total:        r.Total,
		},
		DeliveryAddress:  r.DeliveryAddress,
		Status:           entities.OrderStatusType(r.Status),
		StatusHistory:    history,
		AssignedDriverID: r.AssignedDriverID,
		Delivery:         toDomainDelivery(r.Delivery),
		RejectionReason:  r.RejectionReason,
		Unread:           r.Unread,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func fromDomainDelivery(l *entities.DeliveryLeg) *DeliveryRecord {
	if l == nil {
		return nil
	}
	return &DeliveryRecord{
		Status:          l.Status.String(),
		PickupLocations: l.PickupLocations,
		DropoffLocation: l.DropoffLocation,
		Fee:             l.Fee,
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

func toDomainDelivery(r *DeliveryRecord) *entities.DeliveryLeg {
	if r == nil {
		return nil
	}
	return &entities.DeliveryLeg{
		Status:          entities.DeliveryStatusType(r.Status),
		PickupLocations: r.PickupLocations,
		DropoffLocation: r.DropoffLocation,
		Fee:             r.Fee,
		DriverID:        r.DriverID,
		Attempt:         r.Attempt,
		AssignedAt:      r.AssignedAt,
		PickedUpAt:      r.PickedUpAt,
		InTransitAt:     r.InTransitAt,
		DeliveredAt:     r.DeliveredAt,
		FailedAt:        r.FailedAt,
		FailureReason:   r.FailureReason,
	}
}

func FromDomainMedicine(m *entities.Medicine) *MedicineRecord {
	if m == nil {
		return nil
	}
	return &MedicineRecord{
		ID:                   m.ID,
		Name:                 m.Name,
		Category:             m.Category,
		RequiresPrescription: m.RequiresPrescription,
		UnitPrice:            m.UnitPrice,
		UpdatedAt:            m.UpdatedAt,
	}
}

func ToDomainMedicine(r *MedicineRecord) *entities.Medicine {
	if r == nil {
		return nil
	}
	return &entities.Medicine{
		ID:                   r.ID,
		Name:                 r.Name,
		Category:             r.Category,
		RequiresPrescription: r.RequiresPrescription,
		UnitPrice:            r.UnitPrice,
		UpdatedAt:            r.UpdatedAt,
	}
}

func FromDomainPharmacy(p *entities.Pharmacy) *PharmacyRecord {
	if p == nil {
		return nil
	}
	return &PharmacyRecord{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToDomainPharmacy(r *PharmacyRecord) *entities.Pharmacy {
	if r == nil {
		return nil
	}
	return &entities.Pharmacy{
		ID:        r.ID,
		Name:      r.Name,
		Address:   r.Address,
		UpdatedAt: r.UpdatedAt,
	}
}
