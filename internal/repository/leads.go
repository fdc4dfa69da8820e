package repository

import (
	"database/sql"
	"fmt"

	"github.com/leadbank/crm-service/internal/models"
)

// LeadFilter narrows ListLeads results; zero values mean no restriction
type LeadFilter struct {
	Status  string
	Segment string
	AgentID int64
}

// CreateLead creates a new lead in the database
func (r *Repository) CreateLead(lead *models.Lead) error {
	query := `
		INSERT INTO crm.leads (full_name, mobile, email, segment, team_id, agent_id, status, source, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, lead.FullName, lead.Mobile, lead.Email, lead.Segment, lead.TeamID, lead.AgentID, lead.Status, lead.Source, lead.Note).
		Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// FindLeadByID retrieves a lead by id
func (r *Repository) FindLeadByID(id int64) (*models.Lead, error) {
	lead := &models.Lead{}
	query := `
		SELECT id, full_name, mobile, email, segment, team_id, agent_id, status, source, note, created_at, updated_at
		FROM crm.leads
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&lead.ID, &lead.FullName, &lead.Mobile, &lead.Email, &lead.Segment, &lead.TeamID, &lead.AgentID,
			&lead.Status, &lead.Source, &lead.Note, &lead.CreatedAt, &lead.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lead not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	return lead, nil
}

// FindLeadByMobile retrieves a lead by its normalized mobile number
func (r *Repository) FindLeadByMobile(mobile string) (*models.Lead, error) {
	lead := &models.Lead{}
	query := `
		SELECT id, full_name, mobile, email, segment, team_id, agent_id, status, source, note, created_at, updated_at
		FROM crm.leads
		WHERE mobile = $1`
	err := r.db.QueryRow(query, mobile).
		Scan(&lead.ID, &lead.FullName, &lead.Mobile, &lead.Email, &lead.Segment, &lead.TeamID, &lead.AgentID,
			&lead.Status, &lead.Source, &lead.Note, &lead.CreatedAt, &lead.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lead not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	return lead, nil
}

// ListLeads returns leads matching the filter, newest first
func (r *Repository) ListLeads(filter LeadFilter) ([]models.Lead, error) {
	query := `
		SELECT id, full_name, mobile, email, segment, team_id, agent_id, status, source, note, created_at, updated_at
		FROM crm.leads
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR segment = $2)
		  AND ($3 = 0 OR agent_id = $3)
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, filter.Status, filter.Segment, filter.AgentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(&lead.ID, &lead.FullName, &lead.Mobile, &lead.Email, &lead.Segment, &lead.TeamID, &lead.AgentID,
			&lead.Status, &lead.Source, &lead.Note, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leads: %w", err)
	}
	return leads, nil
}

// UpdateLead updates the mutable fields of a lead
func (r *Repository) UpdateLead(lead *models.Lead) error {
	query := `
		UPDATE crm.leads
		SET full_name = $2, mobile = $3, email = $4, segment = $5, team_id = $6, agent_id = $7,
		    status = $8, source = $9, note = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(query, lead.ID, lead.FullName, lead.Mobile, lead.Email, lead.Segment, lead.TeamID,
		lead.AgentID, lead.Status, lead.Source, lead.Note).
		Scan(&lead.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("lead not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return nil
}

// DeleteLead removes a lead by id
func (r *Repository) DeleteLead(id int64) error {
	res, err := r.db.Exec(`DELETE FROM crm.leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lead not found")
	}
	return nil
}

// ListStaleLeads returns non-closed leads not touched for the given number of days
func (r *Repository) ListStaleLeads(days int) ([]models.Lead, error) {
	query := `
		SELECT id, full_name, mobile, email, segment, team_id, agent_id, status, source, note, created_at, updated_at
		FROM crm.leads
		WHERE status NOT IN ($1, $2)
		  AND updated_at < CURRENT_TIMESTAMP - make_interval(days => $3)
		ORDER BY agent_id, updated_at`
	rows, err := r.db.Query(query, models.LeadStatusConverted, models.LeadStatusLost, days)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale leads: %w", err)
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(&lead.ID, &lead.FullName, &lead.Mobile, &lead.Email, &lead.Segment, &lead.TeamID, &lead.AgentID,
			&lead.Status, &lead.Source, &lead.Note, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stale leads: %w", err)
	}
	return leads, nil
}
