package email

import (
	"fmt"
	"net/smtp"
	"time"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	OperatorAddr string
}

// EmailService sends operator notifications. Fiscalization failures never
// block a sale, so the follow-up channel is this mailbox.
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// IsConfigured reports whether SMTP and an operator address are set up.
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != "" && s.config.OperatorAddr != ""
}

// SendFiscalFailureAlert notifies the operator that a receipt completed
// without fiscal proof and needs manual re-fiscalization.
func (s *EmailService) SendFiscalFailureAlert(invoiceNumber, status, detail string) error {
	subject := fmt.Sprintf("Fiscalization %s for receipt %s", status, invoiceNumber)
	body := fmt.Sprintf(
		"Receipt %s was completed without fiscal proof at %s.\r\n\r\n"+
			"Outcome: %s\r\n"+
			"Detail: %s\r\n\r\n"+
			"The receipt keeps its placeholder invoice number until it is re-fiscalized.\r\n",
		invoiceNumber,
		time.Now().Format("02.01.2006. 15:04:05"),
		status,
		detail,
	)
	return s.sendEmail(s.config.OperatorAddr, s.buildPlainEmail(s.config.OperatorAddr, subject, body))
}

// SendDailyReport mails a generated daily sales summary to the operator.
func (s *EmailService) SendDailyReport(date time.Time, total float64, invoiceCount int) error {
	subject := fmt.Sprintf("Daily sales report %s", date.Format("02.01.2006."))
	body := fmt.Sprintf(
		"Sales report for %s\r\n\r\n"+
			"Invoices: %d\r\n"+
			"Total:    %.2f\r\n",
		date.Format("02.01.2006."),
		invoiceCount,
		total,
	)
	return s.sendEmail(s.config.OperatorAddr, s.buildPlainEmail(s.config.OperatorAddr, subject, body))
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildPlainEmail builds a plain-text email message
func (s *EmailService) buildPlainEmail(to, subject, body string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + body)
}
