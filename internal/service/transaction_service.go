package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/request"
	"github.com/jmolenaar/etf-tracker-backend/internal/model"
	"github.com/jmolenaar/etf-tracker-backend/internal/repository"
)

// TransactionService handles ledger business logic. The ledger is
// append-only: records can be listed and appended, never edited.
type TransactionService struct {
	txRepo  *repository.TransactionRepository
	etfRepo *repository.ETFRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(txRepo *repository.TransactionRepository, etfRepo *repository.ETFRepository) *TransactionService {
	return &TransactionService{
		txRepo:  txRepo,
		etfRepo: etfRepo,
	}
}

// GetTransactions retrieves ledger records, optionally filtered by symbol.
// An empty symbol returns the full ledger in stable chronological order.
func (s *TransactionService) GetTransactions(symbol string) ([]model.Transaction, error) {
	return s.txRepo.ListTransactions(symbol)
}

// GetTransaction retrieves a single ledger record by ID.
func (s *TransactionService) GetTransaction(id string) (model.Transaction, error) {
	return s.txRepo.GetTransaction(id)
}

// CreateTransaction appends a new record to the ledger.
//
// The referenced ETF must exist. Commission defaults to zero and amount to
// shares*price+commission when omitted. A provided amount that disagrees
// with shares*price+commission beyond the tolerance is accepted as given
// (broker statements are the source of truth) but logged as a warning.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (model.Transaction, error) {
	etf, err := s.etfRepo.GetETF(req.Symbol)
	if err != nil {
		return model.Transaction{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	tx := model.Transaction{
		ID:     uuid.New().String(),
		Symbol: etf.Symbol,
		Date:   date.UTC(),
		Shares: req.Shares,
		Price:  req.Price,
	}
	if req.Commission != nil {
		tx.Commission = *req.Commission
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	} else {
		tx.Amount = tx.ExpectedAmount()
	}

	if diff, ok := tx.AmountMismatch(); ok {
		log.Printf("transaction %s (%s): amount %s deviates from shares*price+commission by %s",
			tx.ID, tx.Symbol, tx.Amount, diff)
	}

	if err := s.txRepo.AppendTransaction(ctx, &tx); err != nil {
		return model.Transaction{}, err
	}

	return s.txRepo.GetTransaction(tx.ID)
}

// Holdings folds the full ledger into current per-symbol positions.
func (s *TransactionService) Holdings() (map[string]model.Holding, error) {
	transactions, err := s.txRepo.ListTransactions("")
	if err != nil {
		return nil, err
	}
	return AggregateHoldings(transactions), nil
}
