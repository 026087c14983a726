package repository

import (
	"context"

	"gorm.io/gorm"

	"carwash-api/internal/domain/entity"
	domainRepo "carwash-api/internal/domain/repository"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateBatch(ctx context.Context, payments []entity.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Create(&payments).Error
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID uint) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFrom(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) SumUSDByOrder(ctx context.Context, orderID uint) (int64, error) {
	var sum int64
	err := dbFrom(ctx, r.db).Model(&entity.Payment{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(amount_usd_cents), 0)").
		Scan(&sum).Error
	return sum, err
}
