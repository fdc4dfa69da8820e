package service

import (
	"fmt"

	"github.com/leadbank/crm-service/internal/models"
	"github.com/leadbank/crm-service/internal/repository"
	"github.com/leadbank/crm-service/internal/utils"
)

// LeadInput carries the writable fields of a lead
type LeadInput struct {
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Segment  string `json:"segment"`
	TeamID   int64  `json:"team_id"`
	AgentID  int64  `json:"agent_id"`
	Status   string `json:"status"`
	Source   string `json:"source"`
	Note     string `json:"note"`
}

// CreateLead validates and stores a new lead. The mobile number is normalized
// before it touches the database so WhatsApp traffic can be matched to it.
func (s *Service) CreateLead(input LeadInput) (*models.Lead, error) {
	if input.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	mobile, err := utils.NormalizePhone(input.Mobile)
	if err != nil {
		return nil, fmt.Errorf("invalid mobile: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.LeadStatusNew
	}
	if !models.ValidLeadStatus(status) {
		return nil, fmt.Errorf("unknown lead status %q", status)
	}

	lead := &models.Lead{
		FullName: input.FullName,
		Mobile:   mobile,
		Email:    input.Email,
		Segment:  input.Segment,
		TeamID:   input.TeamID,
		AgentID:  input.AgentID,
		Status:   status,
		Source:   input.Source,
		Note:     input.Note,
	}
	if err := s.repo.CreateLead(lead); err != nil {
		return nil, err
	}

	s.log.Infof("Lead created: %d (%s)", lead.ID, lead.Segment)
	return lead, nil
}

// ListLeads returns leads with masked mobile numbers
func (s *Service) ListLeads(filter repository.LeadFilter) ([]models.Lead, error) {
	leads, err := s.repo.ListLeads(filter)
	if err != nil {
		return nil, err
	}
	for i := range leads {
		leads[i].Mobile = utils.MaskMobile(leads[i].Mobile)
	}
	return leads, nil
}

// GetLead returns one lead with the full mobile number
func (s *Service) GetLead(id int64) (*models.Lead, error) {
	return s.repo.FindLeadByID(id)
}

// UpdateLead applies writable fields onto an existing lead
func (s *Service) UpdateLead(id int64, input LeadInput) (*models.Lead, error) {
	lead, err := s.repo.FindLeadByID(id)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		lead.FullName = input.FullName
	}
	if input.Mobile != "" {
		mobile, err := utils.NormalizePhone(input.Mobile)
		if err != nil {
			return nil, fmt.Errorf("invalid mobile: %w", err)
		}
		lead.Mobile = mobile
	}
	if input.Email != "" {
		lead.Email = input.Email
	}
	if input.Segment != "" {
		lead.Segment = input.Segment
	}
	if input.TeamID != 0 {
		lead.TeamID = input.TeamID
	}
	if input.AgentID != 0 {
		lead.AgentID = input.AgentID
	}
	if input.Status != "" {
		if !models.ValidLeadStatus(input.Status) {
			return nil, fmt.Errorf("unknown lead status %q", input.Status)
		}
		lead.Status = input.Status
	}
	if input.Source != "" {
		lead.Source = input.Source
	}
	if input.Note != "" {
		lead.Note = input.Note
	}

	if err := s.repo.UpdateLead(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// DeleteLead removes a lead
func (s *Service) DeleteLead(id int64) error {
	if err := s.repo.DeleteLead(id); err != nil {
		return err
	}
	s.log.Infof("Lead deleted: %d", id)
	return nil
}

// SendFollowUpDigests emails each agent their stale leads. Called from the
// daily cron job; per-agent failures are logged and do not stop the run.
func (s *Service) SendFollowUpDigests() error {
	leads, err := s.repo.ListStaleLeads(s.config.StaleLeadDays)
	if err != nil {
		return err
	}

	byAgent := map[int64][]models.Lead{}
	for _, lead := range leads {
		byAgent[lead.AgentID] = append(byAgent[lead.AgentID], lead)
	}

	for agentID, agentLeads := range byAgent {
		agent, err := s.repo.FindUserByID(agentID)
		if err != nil {
			s.log.Errorf("Digest skipped for agent %d: %v", agentID, err)
			continue
		}
		if err := s.mailer.SendStaleLeadDigest(agent.Email, agent.Username, agentLeads); err != nil {
			s.log.Errorf("Digest failed for agent %d: %v", agentID, err)
		}
	}

	s.log.Infof("Follow-up digest run complete: %d stale lead(s), %d agent(s)", len(leads), len(byAgent))
	return nil
}
