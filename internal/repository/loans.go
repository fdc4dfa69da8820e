package repository

import (
	"database/sql"
	"fmt"

	"github.com/leadbank/crm-service/internal/models"
)

// CreateLoanApplication creates a new draft loan application
func (r *Repository) CreateLoanApplication(app *models.LoanApplication) error {
	query := `
		INSERT INTO crm.loan_applications
			(lead_id, agent_id, team_id, segment, amount, term_months, offered_rate, status, step,
			 applicant_name, mobile, monthly_income, consent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, app.LeadID, app.AgentID, app.TeamID, app.Segment, app.Amount,
		app.TermMonths, app.OfferedRate, app.Status, app.Step,
		app.ApplicantName, app.Mobile, app.MonthlyIncome, app.Consent).
		Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan application: %w", err)
	}
	return nil
}

// FindLoanApplicationByID retrieves a loan application by id
func (r *Repository) FindLoanApplicationByID(id int64) (*models.LoanApplication, error) {
	app := &models.LoanApplication{}
	query := `
		SELECT id, lead_id, agent_id, team_id, segment, amount, term_months, offered_rate, status, step,
		       applicant_name, mobile, monthly_income, consent, created_at, updated_at
		FROM crm.loan_applications
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&app.ID, &app.LeadID, &app.AgentID, &app.TeamID, &app.Segment, &app.Amount,
			&app.TermMonths, &app.OfferedRate, &app.Status, &app.Step,
			&app.ApplicantName, &app.Mobile, &app.MonthlyIncome, &app.Consent, &app.CreatedAt, &app.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("loan application not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find loan application: %w", err)
	}
	return app, nil
}

// ListLoanApplications returns applications, optionally restricted to one status
func (r *Repository) ListLoanApplications(status string) ([]models.LoanApplication, error) {
	query := `
		SELECT id, lead_id, agent_id, team_id, segment, amount, term_months, offered_rate, status, step,
		       applicant_name, mobile, monthly_income, consent, created_at, updated_at
		FROM crm.loan_applications
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan applications: %w", err)
	}
	defer rows.Close()

	apps := []models.LoanApplication{}
	for rows.Next() {
		var app models.LoanApplication
		if err := rows.Scan(&app.ID, &app.LeadID, &app.AgentID, &app.TeamID, &app.Segment, &app.Amount,
			&app.TermMonths, &app.OfferedRate, &app.Status, &app.Step,
			&app.ApplicantName, &app.Mobile, &app.MonthlyIncome, &app.Consent, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read loan applications: %w", err)
	}
	return apps, nil
}

// UpdateLoanApplication persists form-step progress and derived fields
func (r *Repository) UpdateLoanApplication(app *models.LoanApplication) error {
	query := `
		UPDATE crm.loan_applications
		SET amount = $2, term_months = $3, offered_rate = $4, step = $5,
		    applicant_name = $6, mobile = $7, monthly_income = $8, consent = $9,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(query, app.ID, app.Amount, app.TermMonths, app.OfferedRate, app.Step,
		app.ApplicantName, app.Mobile, app.MonthlyIncome, app.Consent).
		Scan(&app.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("loan application not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update loan application: %w", err)
	}
	return nil
}

// UpdateLoanApplicationStatus moves an application to a new status
func (r *Repository) UpdateLoanApplicationStatus(id int64, status string) error {
	query := `
		UPDATE crm.loan_applications
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id`
	var updatedID int64
	err := r.db.QueryRow(query, id, status).Scan(&updatedID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("loan application not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update loan application status: %w", err)
	}
	return nil
}
