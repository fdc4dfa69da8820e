package service

import (
	"fmt"

	"github.com/leadbank/crm-service/internal/models"
	"github.com/leadbank/crm-service/internal/utils"
)

// StepInput carries the fields of one loan application form step
type StepInput struct {
	Step          int     `json:"step"`
	ApplicantName string  `json:"applicant_name"`
	Mobile        string  `json:"mobile"`
	Amount        float64 `json:"amount"`
	TermMonths    int     `json:"term_months"`
	MonthlyIncome float64 `json:"monthly_income"`
	Consent       bool    `json:"consent"`
}

// ValidateStep checks one form step in isolation. Pure so the multi-step
// rules stay identical between the API and any future import path.
func ValidateStep(input StepInput) error {
	switch input.Step {
	case 1:
		if input.ApplicantName == "" {
			return fmt.Errorf("step 1: applicant_name is required")
		}
		if _, err := utils.NormalizePhone(input.Mobile); err != nil {
			return fmt.Errorf("step 1: invalid mobile: %w", err)
		}
	case 2:
		if input.Amount <= 0 {
			return fmt.Errorf("step 2: amount must be positive")
		}
		if input.TermMonths < 1 || input.TermMonths > 360 {
			return fmt.Errorf("step 2: term_months must be between 1 and 360")
		}
		if input.MonthlyIncome <= 0 {
			return fmt.Errorf("step 2: monthly_income must be positive")
		}
	case 3:
		if !input.Consent {
			return fmt.Errorf("step 3: consent is required")
		}
	default:
		return fmt.Errorf("unknown step %d", input.Step)
	}
	return nil
}

// CreateLoanApplication opens a draft application for a lead, priced with the
// current offered rate
func (s *Service) CreateLoanApplication(leadID, agentID int64) (*models.LoanApplication, error) {
	lead, err := s.repo.FindLeadByID(leadID)
	if err != nil {
		return nil, err
	}

	rate, err := s.rates.GetOfferedRate()
	if err != nil {
		return nil, fmt.Errorf("failed to price application: %w", err)
	}

	app := &models.LoanApplication{
		LeadID:        lead.ID,
		AgentID:       agentID,
		TeamID:        lead.TeamID,
		Segment:       lead.Segment,
		OfferedRate:   rate,
		Status:        models.LoanStatusDraft,
		Step:          1,
		ApplicantName: lead.FullName,
		Mobile:        lead.Mobile,
	}
	if err := s.repo.CreateLoanApplication(app); err != nil {
		return nil, err
	}

	s.log.Infof("Loan application %d opened for lead %d at %.2f%%", app.ID, lead.ID, rate)
	return app, nil
}

// SubmitStep validates and stores one form step. Steps must be completed in
// order; completing step 3 submits the application.
func (s *Service) SubmitStep(id int64, input StepInput) (*models.LoanApplication, error) {
	app, err := s.repo.FindLoanApplicationByID(id)
	if err != nil {
		return nil, err
	}
	if app.Status != models.LoanStatusDraft {
		return nil, fmt.Errorf("application %d is %s, not editable", id, app.Status)
	}
	if input.Step > app.Step+1 {
		return nil, fmt.Errorf("step %d submitted before step %d", input.Step, app.Step+1)
	}
	if err := ValidateStep(input); err != nil {
		return nil, err
	}

	switch input.Step {
	case 1:
		mobile, err := utils.NormalizePhone(input.Mobile)
		if err != nil {
			return nil, err
		}
		app.ApplicantName = input.ApplicantName
		app.Mobile = mobile
	case 2:
		app.Amount = input.Amount
		app.TermMonths = input.TermMonths
		app.MonthlyIncome = input.MonthlyIncome
	case 3:
		app.Consent = input.Consent
	}
	if input.Step > app.Step {
		app.Step = input.Step
	}

	if err := s.repo.UpdateLoanApplication(app); err != nil {
		return nil, err
	}

	if app.Step == 3 && app.Consent {
		if err := s.repo.UpdateLoanApplicationStatus(app.ID, models.LoanStatusSubmitted); err != nil {
			return nil, err
		}
		app.Status = models.LoanStatusSubmitted
		s.log.Infof("Loan application %d submitted", app.ID)
	}
	return app, nil
}

// DecideLoanApplication approves or rejects a submitted application and
// notifies the lead by email when an address is on file
func (s *Service) DecideLoanApplication(id int64, status string) (*models.LoanApplication, error) {
	if status != models.LoanStatusApproved && status != models.LoanStatusRejected && status != models.LoanStatusDisbursed {
		return nil, fmt.Errorf("invalid decision %q", status)
	}

	app, err := s.repo.FindLoanApplicationByID(id)
	if err != nil {
		return nil, err
	}
	if status == models.LoanStatusDisbursed && app.Status != models.LoanStatusApproved {
		return nil, fmt.Errorf("application %d must be approved before disbursement", id)
	}
	if (status == models.LoanStatusApproved || status == models.LoanStatusRejected) && app.Status != models.LoanStatusSubmitted {
		return nil, fmt.Errorf("application %d is %s, not awaiting decision", id, app.Status)
	}

	if err := s.repo.UpdateLoanApplicationStatus(id, status); err != nil {
		return nil, err
	}
	app.Status = status
	s.log.Infof("Loan application %d -> %s", id, status)

	if status == models.LoanStatusApproved || status == models.LoanStatusRejected {
		lead, err := s.repo.FindLeadByID(app.LeadID)
		if err == nil && lead.Email != "" {
			// Decision stands even if the notification fails
			if err := s.mailer.SendLoanDecision(lead.Email, app.ApplicantName, app); err != nil {
				s.log.Errorf("Decision email for application %d failed: %v", id, err)
			}
		}
	}
	return app, nil
}

// GetLoanApplication returns one application
func (s *Service) GetLoanApplication(id int64) (*models.LoanApplication, error) {
	return s.repo.FindLoanApplicationByID(id)
}

// ListLoanApplications returns applications, optionally by status
func (s *Service) ListLoanApplications(status string) ([]models.LoanApplication, error) {
	if status != "" && !models.ValidLoanStatus(status) {
		return nil, fmt.Errorf("unknown loan status %q", status)
	}
	return s.repo.ListLoanApplications(status)
}
