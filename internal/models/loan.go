package models

import "time"

// Loan application statuses
const (
	LoanStatusDraft     = "draft"
	LoanStatusSubmitted = "submitted"
	LoanStatusApproved  = "approved"
	LoanStatusRejected  = "rejected"
	LoanStatusDisbursed = "disbursed"
)

// LoanApplication represents a bank loan application filed for a lead
type LoanApplication struct {
	ID            int64     `json:"id"`
	LeadID        int64     `json:"lead_id"`
	AgentID       int64     `json:"agent_id"`
	TeamID        int64     `json:"team_id"`
	Segment       string    `json:"segment"`
	Amount        float64   `json:"amount"`
	TermMonths    int       `json:"term_months"`
	OfferedRate   float64   `json:"offered_rate"`
	Status        string    `json:"status"`
	Step          int       `json:"step"` // last completed form step, 1-3
	ApplicantName string    `json:"applicant_name"`
	Mobile        string    `json:"mobile"`
	MonthlyIncome float64   `json:"monthly_income"`
	Consent       bool      `json:"consent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidLoanStatus reports whether s is one of the known application statuses
func ValidLoanStatus(s string) bool {
	switch s {
	case LoanStatusDraft, LoanStatusSubmitted, LoanStatusApproved, LoanStatusRejected, LoanStatusDisbursed:
		return true
	}
	return false
}
