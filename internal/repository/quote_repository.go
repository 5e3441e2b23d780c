package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
	"github.com/jmolenaar/etf-tracker-backend/internal/model"
)

// QuoteRepository provides data access methods for the price_quote table,
// the audit trail of every successfully fetched price.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// InsertQuote records a fetched price.
func (r *QuoteRepository) InsertQuote(ctx context.Context, quote *model.PriceQuote) error {
	query := `
        INSERT INTO price_quote (id, symbol, price, fetched_at)
        VALUES (?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		quote.ID,
		model.NormalizeSymbol(quote.Symbol),
		quote.Price.String(),
		quote.FetchedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert price quote: %w", err)
	}

	return nil
}

// LatestQuotes returns the most recently fetched quote per symbol.
func (r *QuoteRepository) LatestQuotes() (map[string]model.PriceQuote, error) {
	query := `
        SELECT pq.id, pq.symbol, pq.price, pq.fetched_at
        FROM price_quote pq
        INNER JOIN (
            SELECT symbol, MAX(fetched_at) AS latest
            FROM price_quote
            GROUP BY symbol
        ) l ON pq.symbol = l.symbol AND pq.fetched_at = l.latest
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_quote table: %w", err)
	}
	defer rows.Close()

	quotes := make(map[string]model.PriceQuote)

	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes[quote.Symbol] = quote
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_quote table: %w", err)
	}

	return quotes, nil
}

// History returns all stored quotes for a symbol, newest first.
// Returns ErrQuoteNotFound when no quote was ever recorded for the symbol.
func (r *QuoteRepository) History(symbol string) ([]model.PriceQuote, error) {
	query := `
        SELECT id, symbol, price, fetched_at
        FROM price_quote
        WHERE symbol = ?
        ORDER BY fetched_at DESC
    `

	rows, err := r.db.Query(query, model.NormalizeSymbol(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to query price_quote table: %w", err)
	}
	defer rows.Close()

	quotes := []model.PriceQuote{}

	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_quote table: %w", err)
	}

	if len(quotes) == 0 {
		return nil, apperrors.ErrQuoteNotFound
	}

	return quotes, nil
}

func scanQuote(row scanner) (model.PriceQuote, error) {
	var quote model.PriceQuote
	var priceStr, fetchedStr string

	err := row.Scan(
		&quote.ID,
		&quote.Symbol,
		&priceStr,
		&fetchedStr,
	)
	if err != nil {
		return model.PriceQuote{}, fmt.Errorf("failed to scan price_quote table results: %w", err)
	}

	if quote.Price, err = ParseDecimal(priceStr); err != nil {
		return model.PriceQuote{}, err
	}
	if quote.FetchedAt, err = ParseTime(fetchedStr); err != nil {
		return model.PriceQuote{}, err
	}

	return quote, nil
}
