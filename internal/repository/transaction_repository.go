package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
	"github.com/jmolenaar/etf-tracker-backend/internal/model"
)

// TransactionRepository provides data access methods for the append-only
// transaction ledger (txn table).
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ListTransactions retrieves ledger records ordered by execution date, then
// insertion order. The stable ordering matters for any future FIFO
// cost-basis extension even though plain sums are order-independent.
// If symbol is empty, the full ledger is returned.
func (r *TransactionRepository) ListTransactions(symbol string) ([]model.Transaction, error) {
	query := `
        SELECT id, symbol, date, shares, price, amount, commission, created_at
        FROM txn
    `

	var args []any

	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, model.NormalizeSymbol(symbol))
	}

	query += ` ORDER BY date ASC, created_at ASC, id ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query txn table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating txn table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single ledger record by ID.
// Returns ErrTransactionNotFound if no such record exists.
func (r *TransactionRepository) GetTransaction(id string) (model.Transaction, error) {
	query := `
        SELECT id, symbol, date, shares, price, amount, commission, created_at
        FROM txn
        WHERE id = ?
    `

	tx, err := scanTransaction(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return tx, nil
}

// AppendTransaction inserts a new ledger record. Records are immutable once
// written; there is deliberately no update method.
func (r *TransactionRepository) AppendTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
        INSERT INTO txn (id, symbol, date, shares, price, amount, commission)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		model.NormalizeSymbol(tx.Symbol),
		tx.Date.UTC().Format("2006-01-02 15:04:05"),
		tx.Shares.String(),
		tx.Price.String(),
		tx.Amount.String(),
		tx.Commission.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// CountBySymbol returns how many ledger records reference a symbol.
// Used to block deletion of ETFs with history.
func (r *TransactionRepository) CountBySymbol(symbol string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM txn WHERE symbol = ?`, model.NormalizeSymbol(symbol)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var tx model.Transaction
	var dateStr, sharesStr, priceStr, amountStr, commissionStr string
	var createdStr sql.NullString

	err := row.Scan(
		&tx.ID,
		&tx.Symbol,
		&dateStr,
		&sharesStr,
		&priceStr,
		&amountStr,
		&commissionStr,
		&createdStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan txn table results: %w", err)
	}

	if tx.Date, err = ParseTime(dateStr); err != nil {
		return model.Transaction{}, err
	}
	if tx.Shares, err = ParseDecimal(sharesStr); err != nil {
		return model.Transaction{}, err
	}
	if tx.Price, err = ParseDecimal(priceStr); err != nil {
		return model.Transaction{}, err
	}
	if tx.Amount, err = ParseDecimal(amountStr); err != nil {
		return model.Transaction{}, err
	}
	if tx.Commission, err = ParseDecimal(commissionStr); err != nil {
		return model.Transaction{}, err
	}
	if createdStr.Valid {
		if tx.CreatedAt, err = ParseTime(createdStr.String); err != nil {
			return model.Transaction{}, err
		}
	}

	return tx, nil
}
