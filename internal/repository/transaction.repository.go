package repository

import (
	"context"

	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/pkg/pg"
)

// TransactionRepository is an append-only ledger. Rows are created once and
// never updated or deleted.
type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(txn)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

// ListByForm returns every transaction recorded against the form in
// creation order. History is small by design, there is no pagination.
func (r *TransactionRepository) ListByForm(ctx context.Context, formID int64) ([]*model.Transaction, error) {
	var entities []*TransactionEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("form_id = ?", formID).
		Order("created_at ASC, id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toTransactionModels(entities), nil
}
