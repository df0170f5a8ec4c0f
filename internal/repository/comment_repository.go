package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidesk/ticket-backend/internal/domain"
)

// CommentRepository stores ticket comments. Comments are immutable; there
// is intentionally no update or delete.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByTicket(ctx context.Context, ticketID string, publicOnly bool) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (ticket_id, user_id, message, type)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.UserID,
		comment.Message,
		comment.Type,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string, publicOnly bool) ([]domain.Comment, error) {
	query := `
        SELECT c.id, c.ticket_id, c.user_id, c.message, c.type, c.created_at,
               u.full_name, u.email, u.role
        FROM comments c
        JOIN users u ON u.id = c.user_id
        WHERE c.ticket_id=$1`
	args := []any{ticketID}
	if publicOnly {
		args = append(args, domain.CommentTypePublic)
		query += ` AND c.type=$2`
	}
	query += ` ORDER BY c.created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.UserID,
			&comment.Message,
			&comment.Type,
			&comment.CreatedAt,
			&comment.AuthorName,
			&comment.AuthorEmail,
			&comment.AuthorRole,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
