package models

import "time"

// Lead statuses
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Lead represents a sales lead
type Lead struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Mobile    string    `json:"mobile"` // normalized digits, masked in list responses
	Email     string    `json:"email"`
	Segment   string    `json:"segment"`
	TeamID    int64     `json:"team_id"`
	AgentID   int64     `json:"agent_id"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidLeadStatus reports whether s is one of the known lead statuses
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}
