package commitment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/costguard/costguard/pkg/models/domain"
	"github.com/costguard/costguard/pkg/store/duckdb"
	"github.com/google/uuid"
)

// Store reads and writes contracted quantities. A dimension without a
// stored contract reads back as a zero-value commitment; absence is a
// normal state, not an error.
type Store interface {
	GetCommitment(ctx context.Context, service, dimension string) (domain.Commitment, error)
	ListCommitments(ctx context.Context, service string) ([]domain.Commitment, error)
	UpsertCommitment(ctx context.Context, c domain.Commitment) error
	ReplaceCommitments(ctx context.Context, service string, commitments []domain.Commitment) error
}

type commitmentStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &commitmentStore{db: db}, nil
}

func (s *commitmentStore) GetCommitment(ctx context.Context, service, dimension string) (domain.Commitment, error) {
	query := `
		SELECT committed, threshold
		FROM commitments
		WHERE service = ? AND dimension = ?`

	var committed float64
	var threshold sql.NullFloat64
	err := s.db.QueryRowContext(ctx, query, service, dimension).Scan(&committed, &threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Commitment{Service: service, Dimension: dimension}, nil
	}
	if err != nil {
		return domain.Commitment{}, fmt.Errorf("query commitment: %w", err)
	}

	c := domain.Commitment{Service: service, Dimension: dimension, Committed: committed}
	if threshold.Valid {
		c.Threshold = &threshold.Float64
	}
	return c, nil
}

func (s *commitmentStore) ListCommitments(ctx context.Context, service string) ([]domain.Commitment, error) {
	query := `
		SELECT dimension, committed, threshold
		FROM commitments
		WHERE service = ?
		ORDER BY dimension`

	rows, err := s.db.QueryContext(ctx, query, service)
	if err != nil {
		return nil, fmt.Errorf("query commitments: %w", err)
	}
	defer rows.Close()

	var out []domain.Commitment
	for rows.Next() {
		var c domain.Commitment
		var threshold sql.NullFloat64
		if err := rows.Scan(&c.Dimension, &c.Committed, &threshold); err != nil {
			return nil, fmt.Errorf("scan commitment: %w", err)
		}
		c.Service = service
		if threshold.Valid {
			v := threshold.Float64
			c.Threshold = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *commitmentStore) UpsertCommitment(ctx context.Context, c domain.Commitment) error {
	query := `
		INSERT INTO commitments (id, service, dimension, committed, threshold)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (service, dimension) DO UPDATE SET
			committed = excluded.committed,
			threshold = excluded.threshold,
			updated_at = now()`

	var threshold sql.NullFloat64
	if c.Threshold != nil {
		threshold = sql.NullFloat64{Float64: *c.Threshold, Valid: true}
	}

	tx := duckdb.GetTransaction(ctx)
	var err error
	if tx == nil {
		_, err = s.db.ExecContext(ctx, query, uuid.NewString(), c.Service, c.Dimension, c.Committed, threshold)
	} else {
		_, err = tx.ExecContext(ctx, query, uuid.NewString(), c.Service, c.Dimension, c.Committed, threshold)
	}
	if err != nil {
		return fmt.Errorf("upsert commitment: %w", err)
	}
	return nil
}

// ReplaceCommitments swaps the full contract set of one service in a
// single transaction. The old rows are gone only if every new row lands.
func (s *commitmentStore) ReplaceCommitments(ctx context.Context, service string, commitments []domain.Commitment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	txCtx := duckdb.WithTransaction(ctx, tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM commitments WHERE service = ?`, service); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear commitments: %w", err)
	}
	for _, c := range commitments {
		c.Service = service
		if err := s.UpsertCommitment(txCtx, c); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit commitments: %w", err)
	}
	return nil
}
