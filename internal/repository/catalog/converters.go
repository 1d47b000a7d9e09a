package catalog

import "fulfillment/internal/entities"

func ToDomainMedicine(m *MedicineDB) *entities.Medicine {
	if m == nil {
		return nil
	}
	return &entities.Medicine{
		ID:                   m.ID,
		Name:                 m.Name,
		Category:             m.Category,
		RequiresPrescription: m.RequiresPrescription,
		UnitPrice:            m.UnitPrice,
		UpdatedAt:            m.UpdatedAt,
	}
}

func FromDomainMedicine(m *entities.Medicine) *MedicineDB {
	if m == nil {
		return nil
	}
	return &MedicineDB{
		ID:                   m.ID,
		Name:                 m.Name,
		Category:             m.Category,
		RequiresPrescription: m.RequiresPrescription,
		UnitPrice:            m.UnitPrice,
		UpdatedAt:            m.UpdatedAt,
	}
}

func ToDomainPharmacy(p *PharmacyDB) *entities.Pharmacy {
	if p == nil {
		return nil
	}
	return &entities.Pharmacy{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromDomainPharmacy(p *entities.Pharmacy) *PharmacyDB {
	if p == nil {
		return nil
	}
	return &PharmacyDB{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		UpdatedAt: p.UpdatedAt,
	}
}
