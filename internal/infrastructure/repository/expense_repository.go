package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"carwash-api/internal/domain/entity"
	domainRepo "carwash-api/internal/domain/repository"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return dbFrom(ctx, r.db).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uint) (*entity.Expense, error) {
	var expense entity.Expense
	err := dbFrom(ctx, r.db).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return dbFrom(ctx, r.db).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Expense{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.StartDate != nil {
		query = query.Where("spent_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("spent_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("spent_at DESC").
		Find(&expenses).Error

	return expenses, total, err
}
