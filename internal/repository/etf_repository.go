package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
	"github.com/jmolenaar/etf-tracker-backend/internal/model"
)

// ETFRepository provides data access methods for the etf table.
type ETFRepository struct {
	db *sql.DB
}

// NewETFRepository creates a new ETFRepository with the provided database connection.
func NewETFRepository(db *sql.DB) *ETFRepository {
	return &ETFRepository{db: db}
}

// ListETFs retrieves all configured ETFs ordered by symbol.
// Returns an empty slice if none are configured.
func (r *ETFRepository) ListETFs() ([]model.ETF, error) {
	query := `
        SELECT symbol, display_name, target_percent, fractionable, resolved_symbol, created_at
        FROM etf
        ORDER BY symbol ASC
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query etf table: %w", err)
	}
	defer rows.Close()

	etfs := []model.ETF{}

	for rows.Next() {
		etf, err := scanETF(rows)
		if err != nil {
			return nil, err
		}
		etfs = append(etfs, etf)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating etf table: %w", err)
	}

	return etfs, nil
}

// GetETF retrieves a single ETF by its normalized symbol.
// Returns ErrETFNotFound if no such ETF exists.
func (r *ETFRepository) GetETF(symbol string) (model.ETF, error) {
	query := `
        SELECT symbol, display_name, target_percent, fractionable, resolved_symbol, created_at
        FROM etf
        WHERE symbol = ?
    `

	row := r.db.QueryRow(query, model.NormalizeSymbol(symbol))
	etf, err := scanETF(row)
	if err == sql.ErrNoRows {
		return model.ETF{}, apperrors.ErrETFNotFound
	}
	if err != nil {
		return model.ETF{}, err
	}

	return etf, nil
}

// UpsertETF inserts a new ETF or updates the configurable attributes of an
// existing one (display name, target percent, fractionable flag). The
// resolved symbol and creation timestamp are left untouched on update.
func (r *ETFRepository) UpsertETF(ctx context.Context, etf model.ETF) error {
	query := `
        INSERT INTO etf (symbol, display_name, target_percent, fractionable)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(symbol) DO UPDATE SET
            display_name = excluded.display_name,
            target_percent = excluded.target_percent,
            fractionable = excluded.fractionable
    `

	_, err := r.db.ExecContext(ctx, query,
		model.NormalizeSymbol(etf.Symbol),
		etf.DisplayName,
		etf.TargetPercent.String(),
		etf.Fractionable,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert etf: %w", err)
	}

	return nil
}

// SetResolvedSymbol records which candidate ticker the price source resolved
// a symbol to, for audit.
func (r *ETFRepository) SetResolvedSymbol(ctx context.Context, symbol, resolved string) error {
	query := `UPDATE etf SET resolved_symbol = ? WHERE symbol = ?`

	result, err := r.db.ExecContext(ctx, query, model.NormalizeSymbol(resolved), model.NormalizeSymbol(symbol))
	if err != nil {
		return fmt.Errorf("failed to set resolved symbol: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrETFNotFound
	}

	return nil
}

// DeleteETF removes an ETF row. The service layer guards against deleting
// ETFs that transactions still reference.
func (r *ETFRepository) DeleteETF(ctx context.Context, symbol string) error {
	query := `DELETE FROM etf WHERE symbol = ?`

	result, err := r.db.ExecContext(ctx, query, model.NormalizeSymbol(symbol))
	if err != nil {
		return fmt.Errorf("failed to delete etf: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrETFNotFound
	}

	return nil
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanETF(row scanner) (model.ETF, error) {
	var etf model.ETF
	var targetStr string
	var resolved sql.NullString
	var createdStr sql.NullString

	err := row.Scan(
		&etf.Symbol,
		&etf.DisplayName,
		&targetStr,
		&etf.Fractionable,
		&resolved,
		&createdStr,
	)
	if err == sql.ErrNoRows {
		return model.ETF{}, err
	}
	if err != nil {
		return model.ETF{}, fmt.Errorf("failed to scan etf table results: %w", err)
	}

	etf.TargetPercent, err = ParseDecimal(targetStr)
	if err != nil {
		return model.ETF{}, err
	}

	if resolved.Valid {
		etf.ResolvedSymbol = resolved.String
	}
	if createdStr.Valid {
		etf.CreatedAt, err = ParseTime(createdStr.String)
		if err != nil {
			return model.ETF{}, err
		}
	}

	return etf, nil
}
