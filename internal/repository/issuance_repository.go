package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cuencos-cuarzo/boletos/internal/domain"
)

// IssuanceRepository persists the issuance audit log.
type IssuanceRepository interface {
	Record(ctx context.Context, record domain.IssuanceRecord) error
	CountBySession(ctx context.Context, sessionID string) (int64, error)
}

// DBTX is the subset of *pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type issuanceRepository struct {
	pool DBTX
}

// NewIssuanceRepository constructs repository.
func NewIssuanceRepository(pool DBTX) IssuanceRepository {
	return &issuanceRepository{pool: pool}
}

func (r *issuanceRepository) Record(ctx context.Context, record domain.IssuanceRecord) error {
	const query = `
        INSERT INTO ticket_issuances (event_id, ticket_id, session_id, buyer_name, buyer_email, issued_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (event_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query,
		record.EventID,
		record.TicketID,
		record.SessionID,
		record.Name,
		record.Email,
		record.IssuedAt,
	)
	return err
}

func (r *issuanceRepository) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM ticket_issuances WHERE session_id=$1`
	var count int64
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(&count)
	return count, err
}
