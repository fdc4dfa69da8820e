package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/leadbank/crm-service/internal/config"
	"github.com/leadbank/crm-service/internal/report"
	"github.com/leadbank/crm-service/internal/repository"
	"github.com/leadbank/crm-service/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aggregateColumns = []string{"group_id", "group_name", "period", "count", "sum"}

// setupReportServer wires the real service and report engine over a mocked
// database, so these tests cover the whole path from query string to JSON
func setupReportServer(t *testing.T) (*mux.Router, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	svc := service.NewService(repository.NewRepository(db), log, &config.Config{}, nil, nil, nil)
	h := NewHandler(svc, log)

	r := mux.NewRouter()
	r.HandleFunc("/performance/monthly-comparison", h.MonthlyComparison).Methods("GET")
	r.HandleFunc("/performance/segment-comparison", h.SegmentComparison).Methods("GET")
	r.HandleFunc("/performance/trends-summary", h.TrendsSummary).Methods("GET")
	return r, mock
}

func TestMonthlyComparisonEndpoint(t *testing.T) {
	t.Run("computes per-agent deltas for the anchored months", func(t *testing.T) {
		router, mock := setupReportServer(t)
		mock.ExpectQuery("FROM crm.loan_applications").
			WithArgs("2025-07", "2025-06", 15, nil, nil).
			WillReturnRows(sqlmock.NewRows(aggregateColumns).
				AddRow("7", "Alice", "2025-07", 10, 50000.0).
				AddRow("7", "Alice", "2025-06", 8, 40000.0))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/performance/monthly-comparison?compareDate=2025-07-15", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var results []report.ComparisonResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, int64(2), results[0].CountChange)
		assert.Equal(t, float64(10000), results[0].AmountChange)
		assert.Equal(t, float64(25), results[0].CountChangePercent)
		assert.Equal(t, float64(25), results[0].AmountChangePercent)
	})

	t.Run("zero-baseline agent uses the sentinel convention", func(t *testing.T) {
		router, mock := setupReportServer(t)
		mock.ExpectQuery("FROM crm.loan_applications").
			WithArgs("2025-03", "2025-02", 10, nil, nil).
			WillReturnRows(sqlmock.NewRows(aggregateColumns).
				AddRow("x", "X", "2025-03", 5, 25000.0))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/performance/monthly-comparison?compareDate=2025-03-10", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var results []report.ComparisonResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, int64(0), results[0].PreviousCount)
		assert.Equal(t, float64(0), results[0].PreviousAmount)
		assert.Equal(t, int64(5), results[0].CountChange)
		assert.Equal(t, float64(25000), results[0].AmountChange)
		assert.Equal(t, float64(100), results[0].CountChangePercent)
		assert.Equal(t, float64(100), results[0].AmountChangePercent)
	})

	t.Run("filter lists are forwarded", func(t *testing.T) {
		router, mock := setupReportServer(t)
		mock.ExpectQuery("FROM crm.loan_applications").
			WithArgs("2025-07", "2025-06", 15, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(aggregateColumns))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET",
			"/performance/monthly-comparison?compareDate=2025-07-15&segments=retail,sme&teamIds=1,2", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unparseable compareDate is normalized, not rejected", func(t *testing.T) {
		router, mock := setupReportServer(t)
		mock.ExpectQuery("FROM crm.loan_applications").
			WillReturnRows(sqlmock.NewRows(aggregateColumns))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/performance/monthly-comparison?compareDate=not-a-date", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSegmentComparisonEndpoint(t *testing.T) {
	t.Run("empty data returns 200 with an empty array", func(t *testing.T) {
		router, mock := setupReportServer(t)
		mock.ExpectQuery("FROM crm.loan_applications").
			WillReturnRows(sqlmock.NewRows(aggregateColumns))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/performance/segment-comparison", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("delegate failure returns 500 with an error envelope", func(t *testing.T) {
		router, mock := setupReportServer(t)
		mock.ExpectQuery("FROM crm.loan_applications").
			WillReturnError(fmt.Errorf("backend unavailable"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/performance/segment-comparison", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var envelope map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.NotEmpty(t, envelope["error"])
	})
}

func TestTrendsSummaryEndpoint(t *testing.T) {
	t.Run("returns one collapsed object", func(t *testing.T) {
		router, mock := setupReportServer(t)
		mock.ExpectQuery("FROM crm.loan_applications").
			WithArgs("2025-07", "2025-06", 15, nil, nil).
			WillReturnRows(sqlmock.NewRows(aggregateColumns).
				AddRow("retail", "retail", "2025-07", 6, 30000.0).
				AddRow("sme", "sme", "2025-07", 4, 20000.0).
				AddRow("retail", "retail", "2025-06", 8, 40000.0))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/performance/trends-summary?compareDate=2025-07-15", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var result report.ComparisonResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "total", result.GroupID)
		assert.Equal(t, int64(10), result.CurrentCount)
		assert.Equal(t, float64(50000), result.CurrentAmount)
		assert.Equal(t, int64(8), result.PreviousCount)
		assert.Equal(t, float64(25), result.CountChangePercent)
	})

	t.Run("delegate failure returns 500", func(t *testing.T) {
		router, mock := setupReportServer(t)
		mock.ExpectQuery("FROM crm.loan_applications").
			WillReturnError(fmt.Errorf("timeout"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/performance/trends-summary", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
