package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leadbank/crm-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateLead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO crm.leads").
		WithArgs("Budi Santoso", "6281234567890", "budi@example.com", "retail", int64(3), int64(7), "new", "whatsapp", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	lead := &models.Lead{
		FullName: "Budi Santoso",
		Mobile:   "6281234567890",
		Email:    "budi@example.com",
		Segment:  "retail",
		TeamID:   3,
		AgentID:  7,
		Status:   models.LeadStatusNew,
		Source:   "whatsapp",
	}
	require.NoError(t, NewRepository(db).CreateLead(lead))
	assert.Equal(t, int64(42), lead.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteLead(t *testing.T) {
	t.Run("missing lead reports not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM crm.leads").
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewRepository(db).DeleteLead(99)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("driver failure is wrapped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM crm.leads").
			WillReturnError(fmt.Errorf("connection reset"))

		err = NewRepository(db).DeleteLead(1)
		assert.Error(t, err)
	})
}
