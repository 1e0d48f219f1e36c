package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nbdwit/club-api/internal/models"
)

// AuditRepository persists the mutation audit log in Postgres.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs an audit repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts one audit entry. A missing id is generated.
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO mutation_audit (id, mode, payload, actor, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`

	if _, err := r.db.ExecContext(ctx, query, entry.ID, entry.Mode, entry.Payload, entry.Actor, entry.Outcome); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns audit entries newest first with total count for pagination.
func (r *AuditRepository) List(ctx context.Context, page, pageSize int) ([]models.AuditEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM mutation_audit`); err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	query := `
		SELECT id, mode, payload, actor, outcome, created_at
		FROM mutation_audit
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	entries := []models.AuditEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, pageSize, (page-1)*pageSize); err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, total, nil
}
