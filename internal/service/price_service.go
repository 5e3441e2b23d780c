package service

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jmolenaar/etf-tracker-backend/internal/model"
	"github.com/jmolenaar/etf-tracker-backend/internal/repository"
	"github.com/jmolenaar/etf-tracker-backend/internal/yahoo"
)

// fetchConcurrency bounds parallel requests toward the price source.
const fetchConcurrency = 4

// RefreshResult reports the outcome of a batch price refresh. A failed
// symbol never fails the batch; its error message is reported per symbol.
type RefreshResult struct {
	Updated []string          `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// PriceService fetches current prices and maintains the quote audit trail.
type PriceService struct {
	etfRepo   *repository.ETFRepository
	quoteRepo *repository.QuoteRepository
	client    yahoo.Client
}

// NewPriceService creates a new PriceService with the provided dependencies.
func NewPriceService(etfRepo *repository.ETFRepository, quoteRepo *repository.QuoteRepository, client yahoo.Client) *PriceService {
	return &PriceService{
		etfRepo:   etfRepo,
		quoteRepo: quoteRepo,
		client:    client,
	}
}

// RefreshAll fetches a current price for every configured ETF, bounded
// concurrently. Each successful fetch is stored in the quote audit trail and
// the winning candidate ticker is recorded on the ETF row. Failures are
// collected per symbol; the refresh itself only errors when configuration or
// storage access fails.
func (s *PriceService) RefreshAll(ctx context.Context) (RefreshResult, error) {
	etfs, err := s.etfRepo.ListETFs()
	if err != nil {
		return RefreshResult{}, err
	}

	result := RefreshResult{
		Updated: []string{},
		Failed:  map[string]string{},
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for _, etf := range etfs {
		etf := etf
		g.Go(func() error {
			quote, err := s.client.FetchQuote(gctx, etf.Symbol)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Failed[etf.Symbol] = err.Error()
				return nil
			}
			if err := s.storeQuote(gctx, etf, quote); err != nil {
				result.Failed[etf.Symbol] = err.Error()
				return nil
			}
			result.Updated = append(result.Updated, etf.Symbol)
			return nil
		})
	}

	// Workers report failures through the result; the group error is only
	// context cancellation.
	if err := g.Wait(); err != nil {
		return result, err
	}

	sort.Strings(result.Updated)

	if len(result.Failed) > 0 {
		log.Printf("price refresh: %d updated, %d failed", len(result.Updated), len(result.Failed))
	}

	return result, nil
}

func (s *PriceService) storeQuote(ctx context.Context, etf model.ETF, quote yahoo.Quote) error {
	record := model.PriceQuote{
		ID:        uuid.New().String(),
		Symbol:    etf.Symbol,
		Price:     quote.Price,
		FetchedAt: quote.AsOf,
	}
	if err := s.quoteRepo.InsertQuote(ctx, &record); err != nil {
		return err
	}

	if quote.Resolved != "" && quote.Resolved != etf.ResolvedSymbol {
		if err := s.etfRepo.SetResolvedSymbol(ctx, etf.Symbol, quote.Resolved); err != nil {
			return err
		}
	}

	return nil
}

// LatestPrices returns the most recently stored price per symbol.
func (s *PriceService) LatestPrices() (map[string]decimal.Decimal, error) {
	quotes, err := s.quoteRepo.LatestQuotes()
	if err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(quotes))
	for symbol, quote := range quotes {
		prices[symbol] = quote.Price
	}

	return prices, nil
}

// History returns the stored quote trail for a symbol, newest first.
// The symbol must be a configured ETF.
func (s *PriceService) History(symbol string) ([]model.PriceQuote, error) {
	etf, err := s.etfRepo.GetETF(symbol)
	if err != nil {
		return nil, err
	}
	return s.quoteRepo.History(etf.Symbol)
}
