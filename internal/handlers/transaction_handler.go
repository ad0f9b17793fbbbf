package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"transaksi-api/internal/database"
	"transaksi-api/internal/dto"
	"transaksi-api/internal/errors"
	"transaksi-api/internal/repositories"
	"transaksi-api/internal/services"
	"transaksi-api/internal/validation"

	"github.com/labstack/echo/v4"
)

// TransactionCreatedMessage acknowledges a stored transaction.
const TransactionCreatedMessage = "Transaksi berhasil ditambahkan"

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionRepo  repositories.TransactionRepositoryInterface
	metricsCollector services.MetricsRecorderInterface
}

// NewTransactionHandler creates a new transaction handler. metricsCollector may be nil.
func NewTransactionHandler(
	transactionRepo repositories.TransactionRepositoryInterface,
	metricsCollector services.MetricsRecorderInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionRepo:  transactionRepo,
		metricsCollector: metricsCollector,
	}
}

// CreateTransaction records one transaction from the JSON body
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		fieldErrors, ok := validation.FieldErrors(err)
		if !ok {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return c.JSON(http.StatusBadRequest, errors.NewValidationError(fieldErrors, getTraceID(c)))
	}

	transaction, err := req.ToModel()
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	}

	start := time.Now()
	err = h.transactionRepo.Create(c.Request().Context(), transaction)
	h.recordDuration(services.MetricTransactionCreate, time.Since(start))
	if err != nil {
		h.recordFailure("create", err)
		return SendRepositoryError(c, err)
	}

	if h.metricsCollector != nil {
		h.metricsCollector.IncrementCounter(services.MetricTransactionCreated, nil)
	}

	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: TransactionCreatedMessage})
}

// ListTransactions returns every stored transaction in creation order
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	start := time.Now()
	transactions, err := h.transactionRepo.List(c.Request().Context())
	h.recordDuration(services.MetricTransactionList, time.Since(start))
	if err != nil {
		h.recordFailure("list", err)
		return SendRepositoryError(c, err)
	}

	if h.metricsCollector != nil {
		h.metricsCollector.IncrementCounter(services.MetricTransactionListed, nil)
		h.metricsCollector.RecordGauge(services.MetricListSize, float64(len(transactions)), nil)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionListResponse(transactions))
}

func (h *TransactionHandler) recordDuration(name string, duration time.Duration) {
	if h.metricsCollector != nil {
		h.metricsCollector.RecordProcessingTime(name, duration)
	}
}

func (h *TransactionHandler) recordFailure(operation string, err error) {
	if h.metricsCollector == nil {
		return
	}

	reason := "persistence"
	if stderrors.Is(err, database.ErrConnection) {
		reason = "connection"
	}
	h.metricsCollector.IncrementCounter(services.MetricTransactionFailed, map[string]string{
		"operation": operation,
		"reason":    reason,
	})
}
