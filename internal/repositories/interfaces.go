package repositories

import (
	"context"

	"transaksi-api/internal/models"
)

// TransactionRepositoryInterface defines the contract for transaction persistence
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	List(ctx context.Context) ([]models.Transaction, error)
}
