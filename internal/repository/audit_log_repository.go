package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidesk/ticket-backend/internal/domain"
)

// AuditLogRepository stores the append-only change log. No update or
// delete capability is exposed.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.AuditLogEntry, error)
}

type auditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository builds repository.
func NewAuditLogRepository(pool *pgxpool.Pool) AuditLogRepository {
	return &auditLogRepository{pool: pool}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	const query = `
        INSERT INTO audit_logs (ticket_id, action, changed_by)
        VALUES ($1, $2, $3)
        RETURNING id, timestamp`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.Action,
		entry.ChangedBy,
	).Scan(&entry.ID, &entry.Timestamp)
}

func (r *auditLogRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.AuditLogEntry, error) {
	const query = `
        SELECT a.id, a.ticket_id, a.action, a.changed_by, a.timestamp, u.full_name
        FROM audit_logs a
        LEFT JOIN users u ON u.id = a.changed_by
        WHERE a.ticket_id=$1 ORDER BY a.timestamp DESC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditLogEntry
	for rows.Next() {
		var entry domain.AuditLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.Action,
			&entry.ChangedBy,
			&entry.Timestamp,
			&entry.ChangedByName,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
