package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/leadbank/crm-service/internal/config"
	"github.com/leadbank/crm-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendLoanDecision notifies an applicant that their application was approved or rejected
func (s *Sender) SendLoanDecision(to, applicantName string, app *models.LoanApplication) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}

	body := fmt.Sprintf("Dear %s,\n\n", applicantName)
	switch app.Status {
	case models.LoanStatusApproved:
		e.Subject = "Your Loan Application Has Been Approved"
		body += fmt.Sprintf(
			"Your loan application for %.2f over %d months has been approved.\n"+
				"Offered rate: %.2f%% per annum.\n"+
				"Your agent will contact you regarding disbursement.\n",
			app.Amount, app.TermMonths, app.OfferedRate,
		)
	case models.LoanStatusRejected:
		e.Subject = "Your Loan Application Decision"
		body += fmt.Sprintf(
			"Unfortunately we are unable to approve your loan application for %.2f at this time.\n"+
				"Please contact your agent for details.\n",
			app.Amount,
		)
	default:
		return fmt.Errorf("no decision email for status %q", app.Status)
	}
	body += "\nBest regards,\nLeadBank"
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send decision email to %s: %v", to, err)
		return fmt.Errorf("failed to send decision email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// SendStaleLeadDigest emails an agent the leads that have gone quiet
func (s *Sender) SendStaleLeadDigest(to, agentName string, leads []models.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("%d lead(s) waiting for follow-up", len(leads))

	body := fmt.Sprintf("Dear %s,\n\nThe following leads have had no activity recently:\n\n", agentName)
	for _, lead := range leads {
		body += fmt.Sprintf("- %s (%s, %s) — last touched %s\n",
			lead.FullName, lead.Segment, lead.Status, lead.UpdatedAt.Format("2006-01-02"))
	}
	body += "\nBest regards,\nLeadBank CRM"
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", to, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	return e.Send(addr, auth)
}
