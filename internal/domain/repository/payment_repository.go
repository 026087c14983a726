package repository

import (
	"context"

	"carwash-api/internal/domain/entity"
)

// PaymentRepository defines the interface for the append-only payment ledger.
// There are deliberately no update or delete operations.
type PaymentRepository interface {
	CreateBatch(ctx context.Context, payments []entity.Payment) error
	ListByOrder(ctx context.Context, orderID uint) ([]entity.Payment, error)
	// SumUSDByOrder sums the stored amount_usd column for the order.
	SumUSDByOrder(ctx context.Context, orderID uint) (int64, error)
}
