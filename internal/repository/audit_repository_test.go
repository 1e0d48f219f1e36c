package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbdwit/club-api/internal/models"
)

func newAuditMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAuditRepositoryCreateGeneratesID(t *testing.T) {
	db, mock, cleanup := newAuditMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO mutation_audit").
		WithArgs(sqlmock.AnyArg(), "registration", sqlmock.AnyArg(), "teacher", "forwarded").
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.AuditEntry{
		Mode:    "registration",
		Payload: json.RawMessage(`{"id":"30412"}`),
		Actor:   "teacher",
		Outcome: "forwarded",
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryList(t *testing.T) {
	db, mock, cleanup := newAuditMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT id, mode, payload, actor, outcome, created_at").
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "mode", "payload", "actor", "outcome", "created_at"}).
			AddRow("a", "attendance", []byte(`{}`), "teacher", "forwarded", time.Now()).
			AddRow("b", "submission", []byte(`{}`), "student", "failed", time.Now()))

	entries, total, err := repo.List(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
