package service

import (
	"context"
	"fmt"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/request"
	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
	"github.com/jmolenaar/etf-tracker-backend/internal/model"
	"github.com/jmolenaar/etf-tracker-backend/internal/repository"
)

// ETFService handles ETF configuration business logic.
type ETFService struct {
	etfRepo *repository.ETFRepository
	txRepo  *repository.TransactionRepository
}

// NewETFService creates a new ETFService with the provided repository dependencies.
func NewETFService(etfRepo *repository.ETFRepository, txRepo *repository.TransactionRepository) *ETFService {
	return &ETFService{
		etfRepo: etfRepo,
		txRepo:  txRepo,
	}
}

// GetETF retrieves a single ETF by symbol.
func (s *ETFService) GetETF(symbol string) (model.ETF, error) {
	return s.etfRepo.GetETF(symbol)
}

// ListETFs retrieves all configured ETFs ordered by symbol.
func (s *ETFService) ListETFs() ([]model.ETF, error) {
	return s.etfRepo.ListETFs()
}

// CreateETF adds a new ETF to the configuration. Symbols are normalized to
// upper case; creating an existing symbol is rejected rather than silently
// overwriting it.
func (s *ETFService) CreateETF(ctx context.Context, req request.CreateETFRequest) (model.ETF, error) {
	symbol := model.NormalizeSymbol(req.Symbol)

	if _, err := s.etfRepo.GetETF(symbol); err == nil {
		return model.ETF{}, fmt.Errorf("%w: %s", apperrors.ErrDuplicateETF, symbol)
	}

	etf := model.ETF{
		Symbol:        symbol,
		DisplayName:   req.DisplayName,
		TargetPercent: req.TargetPercent,
		Fractionable:  req.Fractionable,
	}
	if etf.DisplayName == "" {
		etf.DisplayName = symbol
	}

	if err := s.etfRepo.UpsertETF(ctx, etf); err != nil {
		return model.ETF{}, err
	}

	return s.etfRepo.GetETF(symbol)
}

// UpdateETF updates the configurable attributes of an existing ETF.
// Only provided fields in the request are updated.
func (s *ETFService) UpdateETF(ctx context.Context, symbol string, req request.UpdateETFRequest) (model.ETF, error) {
	etf, err := s.etfRepo.GetETF(symbol)
	if err != nil {
		return model.ETF{}, err
	}

	if req.DisplayName != nil {
		etf.DisplayName = *req.DisplayName
	}
	if req.TargetPercent != nil {
		etf.TargetPercent = *req.TargetPercent
	}
	if req.Fractionable != nil {
		etf.Fractionable = *req.Fractionable
	}

	if err := s.etfRepo.UpsertETF(ctx, etf); err != nil {
		return model.ETF{}, err
	}

	return s.etfRepo.GetETF(symbol)
}

// DeleteETF removes an ETF from the configuration. An ETF that ledger
// records still reference cannot be deleted; the history must stay
// interpretable.
func (s *ETFService) DeleteETF(ctx context.Context, symbol string) error {
	etf, err := s.etfRepo.GetETF(symbol)
	if err != nil {
		return err
	}

	count, err := s.txRepo.CountBySymbol(etf.Symbol)
	if err != nil {
		return fmt.Errorf("failed to check etf usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s has %d transactions", apperrors.ErrETFInUse, etf.Symbol, count)
	}

	return s.etfRepo.DeleteETF(ctx, etf.Symbol)
}
