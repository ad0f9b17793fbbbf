package repositories

import (
	"context"
	"errors"
	"fmt"

	"transaksi-api/internal/database"
	"transaksi-api/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrPersistence is returned when a statement fails: constraint violations,
// type mismatches or malformed queries.
var ErrPersistence = errors.New("transaction persistence failed")

// connectionExceptionClass is the SQLSTATE class for connection exceptions.
const connectionExceptionClass pq.ErrorClass = "08"

// TransactionRepository handles database operations for transactions
type TransactionRepository struct {
	provider database.Provider
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(provider database.Provider) TransactionRepositoryInterface {
	return &TransactionRepository{
		provider: provider,
	}
}

// Create inserts a single transaction and commits it. The generated ID is
// written back to transaction.
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	err := r.provider.WithConnection(ctx, func(conn *gorm.DB) error {
		return conn.Create(transaction).Error
	})

	return classifyError("failed to create transaction", err)
}

// List returns every stored transaction in creation order.
func (r *TransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)

	err := r.provider.WithConnection(ctx, func(conn *gorm.DB) error {
		return conn.Order("id ASC").Find(&transactions).Error
	})
	if err != nil {
		return nil, classifyError("failed to list transactions", err)
	}

	return transactions, nil
}

func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, database.ErrConnection) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if database.IsConnectionError(err) {
		return fmt.Errorf("%s: %w: %v", op, database.ErrConnection, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Class() == connectionExceptionClass {
			return fmt.Errorf("%s: %w: %s", op, database.ErrConnection, pqErr.Message)
		}
		return fmt.Errorf("%s: %w: %s (SQLSTATE %s %s)", op, ErrPersistence, pqErr.Message, pqErr.Code, pqErr.Code.Name())
	}

	return fmt.Errorf("%s: %w: %v", op, ErrPersistence, err)
}
