package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leadbank/crm-service/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testQuery = report.AggregateQuery{
	Periods: report.Periods{CurrentMonth: "2025-07", PreviousMonth: "2025-06", DayCutoff: 15},
	GroupBy: report.ByAgent,
}

func TestRepository_FetchAggregates(t *testing.T) {
	t.Run("maps rows per agent and period", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("FROM crm.loan_applications").
			WithArgs("2025-07", "2025-06", 15, nil, nil).
			WillReturnRows(sqlmock.NewRows([]string{"agent_id", "username", "period", "count", "sum"}).
				AddRow("7", "Alice", "2025-07", 10, 50000.0).
				AddRow("7", "Alice", "2025-06", 8, 40000.0))

		rows, err := NewRepository(db).FetchAggregates(context.Background(), testQuery)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, report.ComparisonRow{
			GroupID: "7", GroupName: "Alice", Period: "2025-07", Count: 10, Amount: 50000,
		}, rows[0])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("FROM crm.loan_applications").
			WillReturnRows(sqlmock.NewRows([]string{"agent_id", "username", "period", "count", "sum"}))

		rows, err := NewRepository(db).FetchAggregates(context.Background(), testQuery)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("query failure propagates", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("FROM crm.loan_applications").
			WillReturnError(fmt.Errorf("connection refused"))

		_, err = NewRepository(db).FetchAggregates(context.Background(), testQuery)
		assert.Error(t, err)
	})
}
