package repository

import (
	"errors"
	"fmt"

	"fulfillment/internal/entities"
	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html#23505:~:text=foreign_key_violation-,23505,-unique_violation
const PgErrUniqueViolation = "23505"

// Имя частичного уникального индекса "один курьер - одна активная доставка".
const DriverActiveClaimConstraint = "orders_driver_active_claim_idx"

var (
	ErrOrderNotFound    = fmt.Errorf("%w: order", entities.ErrNotFound)
	ErrMedicineNotFound = fmt.Errorf("%w: medicine", entities.ErrNotFound)
	ErrPharmacyNotFound = fmt.Errorf("%w: pharmacy", entities.ErrNotFound)

	ErrOrderExists             = errors.New("order already exists")
	ErrDeliveryNotAvailable    = fmt.Errorf("%w: delivery is not available", entities.ErrAlreadyAssigned)
	ErrDriverHasActiveDelivery = fmt.Errorf("%w: driver already holds an active delivery", entities.ErrDriverBusy)
)

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func IsPgConstraintViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == PgErrUniqueViolation && pgErr.ConstraintName == constraint
	}
	return false
}
