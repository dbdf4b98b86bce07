package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	pq "github.com/lib/pq"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

// PricesRepository defines the contract for price history and summary
// persistence.
type PricesRepository interface {
	IsFresh(ctx context.Context, symbol string) (bool, error)
	ReplaceSeries(ctx context.Context, symbol string, bars []models.PriceBar) error
	Windowed(ctx context.Context, symbol string, since time.Time) ([]models.PriceBar, error)
	GetSummary(ctx context.Context, symbol string, asOf time.Time, horizon models.TimeRange) (string, bool, error)
	UpsertSummary(ctx context.Context, symbol string, asOf time.Time, horizon models.TimeRange, text string) error
}

type pricesRepository struct {
	db *sql.DB
}

func NewPricesRepository(db *sql.DB) PricesRepository {
	return &pricesRepository{db: db}
}

// IsFresh reports whether the store holds at least one bar for symbol
// dated within the last calendar day.
func (r *pricesRepository) IsFresh(ctx context.Context, symbol string) (bool, error) {
	var fresh bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM prices WHERE symbol = $1 AND date >= CURRENT_DATE - INTERVAL '1 day')`,
		symbol).Scan(&fresh)
	if err != nil {
		return false, err
	}
	return fresh, nil
}

// ReplaceSeries swaps the stored history for symbol with bars in a
// single transaction: delete everything, then bulk-insert the new
// rows. Readers never observe the intermediate empty state.
func (r *pricesRepository) ReplaceSeries(ctx context.Context, symbol string, bars []models.PriceBar) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM prices WHERE symbol = $1`, symbol); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"prices",
		"symbol",
		"date",
		"open",
		"high",
		"low",
		"close",
		"volume",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, b := range bars {
		// Rows are keyed by the caller's normalized symbol, not the
		// one stamped on the bar.
		if _, err := stmt.ExecContext(ctx, symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Windowed returns symbol's bars dated on or after since, oldest first.
func (r *pricesRepository) Windowed(ctx context.Context, symbol string, since time.Time) ([]models.PriceBar, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, open, high, low, close, volume FROM prices WHERE symbol = $1 AND date >= $2 ORDER BY date ASC`,
		symbol, since)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var bars []models.PriceBar
	for rows.Next() {
		b := models.PriceBar{Symbol: symbol}
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// GetSummary loads the stored brief for (symbol, asOf, horizon). The
// boolean is false when none exists.
func (r *pricesRepository) GetSummary(ctx context.Context, symbol string, asOf time.Time, horizon models.TimeRange) (string, bool, error) {
	var text string
	err := r.db.QueryRowContext(ctx,
		`SELECT text FROM summaries WHERE symbol = $1 AND as_of = $2 AND horizon = $3`,
		symbol, asOf, string(horizon)).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// UpsertSummary stores text for (symbol, asOf, horizon), overwriting
// any earlier brief for the same day and horizon.
func (r *pricesRepository) UpsertSummary(ctx context.Context, symbol string, asOf time.Time, horizon models.TimeRange, text string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO summaries (symbol, as_of, horizon, text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol, as_of, horizon)
		DO UPDATE SET text = EXCLUDED.text,
					  created_at = NOW()
	`, symbol, asOf, string(horizon), text)
	return err
}
