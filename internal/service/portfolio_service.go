package service

import (
	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/model"
	"github.com/jmolenaar/etf-tracker-backend/internal/repository"
)

// PortfolioService orchestrates valuation and planning: it loads the ETF
// configuration, ledger and latest prices, then delegates to the pure
// functions in this package.
type PortfolioService struct {
	etfRepo            *repository.ETFRepository
	transactionService *TransactionService
	priceService       *PriceService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	etfRepo *repository.ETFRepository,
	transactionService *TransactionService,
	priceService *PriceService,
) *PortfolioService {
	return &PortfolioService{
		etfRepo:            etfRepo,
		transactionService: transactionService,
		priceService:       priceService,
	}
}

// Snapshot values the portfolio at the latest stored prices. Missing prices
// degrade the snapshot (per-symbol missingPrices list) instead of failing it.
func (s *PortfolioService) Snapshot() (model.PortfolioSnapshot, error) {
	snapshot, _, err := s.assemble()
	return snapshot, err
}

// Plan computes a rebalance plan for the given cash amount on top of the
// current snapshot. The plan only ever proposes buys.
func (s *PortfolioService) Plan(cash decimal.Decimal) (model.RebalancePlan, error) {
	snapshot, etfs, err := s.assemble()
	if err != nil {
		return model.RebalancePlan{}, err
	}
	return BuildPlan(snapshot, etfs, cash)
}

// assemble loads configuration, holdings and prices, and values the
// portfolio. Shared by Snapshot and Plan so both see identical inputs.
func (s *PortfolioService) assemble() (model.PortfolioSnapshot, []model.ETF, error) {
	etfs, err := s.etfRepo.ListETFs()
	if err != nil {
		return model.PortfolioSnapshot{}, nil, err
	}

	holdings, err := s.transactionService.Holdings()
	if err != nil {
		return model.PortfolioSnapshot{}, nil, err
	}

	prices, err := s.priceService.LatestPrices()
	if err != nil {
		return model.PortfolioSnapshot{}, nil, err
	}

	return Valuate(etfs, holdings, prices), etfs, nil
}
