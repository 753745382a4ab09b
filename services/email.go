package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html"
	htmltemplate "html/template"
	"strings"
	"sync"
	texttemplate "text/template"
	"time"
	"unicode"

	"lawyer_landing_go/config"
	"lawyer_landing_go/logger"
	"lawyer_landing_go/metrics"
	"lawyer_landing_go/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

//go:embed emails/*
var emailTemplates embed.FS

// Email represents an email message
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadTemplate renders emails/<name>.html and emails/<name>.txt with data
func loadTemplate(templateName string, data interface{}) (htmlBody string, textBody string, err error) {
	htmlTmpl, err := htmltemplate.ParseFS(emailTemplates, "emails/"+templateName+".html")
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.html: %w", templateName, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %w", templateName, err)
	}

	textTmpl, err := texttemplate.ParseFS(emailTemplates, "emails/"+templateName+".txt")
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.txt: %w", templateName, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %w", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// EmailSender delivers one message
type EmailSender interface {
	Send(ctx context.Context, email *Email) error
}

// NewEmailSender returns the console sender in test mode and Resend otherwise
func NewEmailSender(cfg *config.Config) (EmailSender, error) {
	if cfg.EmailTestMode {
		return consoleSender{}, nil
	}
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY not configured")
	}
	return &resendSender{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
	}, nil
}

type resendSender struct {
	client *resend.Client
	from   string
}

func (s *resendSender) Send(ctx context.Context, email *Email) error {
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}
	logger.Info("Email sent via Resend", zap.String("id", sent.Id), zap.Strings("to", email.To))
	return nil
}

// consoleSender logs instead of sending (EMAIL_TEST_MODE)
type consoleSender struct{}

func (consoleSender) Send(_ context.Context, email *Email) error {
	logger.Info("Email (test mode, not sent)",
		zap.Strings("to", email.To),
		zap.String("reply_to", email.ReplyTo),
		zap.String("subject", email.Subject),
		zap.String("text", email.TextBody),
		zap.String("html", truncate(email.HTMLBody, 500)),
	)
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// LeadNotificationEmailData contains data for the lead notification template
type LeadNotificationEmailData struct {
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	ReceivedAt  string
	WhatsAppURL string
}

var plainText = bluemonday.StrictPolicy()

// stripTags removes any markup from visitor text; templates escape the rest
func stripTags(s string) string {
	return html.UnescapeString(plainText.Sanitize(s))
}

var saoPaulo = loadLocation("America/Sao_Paulo")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BuildLeadNotificationEmail tells the attorney a new lead arrived
func BuildLeadNotificationEmail(to string, lead *models.Lead) (*Email, error) {
	data := LeadNotificationEmailData{
		Name:        stripTags(lead.Name),
		Email:       lead.Email,
		Phone:       lead.Phone,
		Subject:     lead.Subject,
		Message:     stripTags(lead.Message),
		ReceivedAt:  lead.CreatedAt.In(saoPaulo).Format("02/01/2006 15:04"),
		WhatsAppURL: WhatsAppLinkForPhone(lead.Phone),
	}

	htmlBody, text, err := loadTemplate("lead_notification", data)
	if err != nil {
		return nil, err
	}

	return &Email{
		To:       []string{to},
		ReplyTo:  lead.Email,
		Subject:  fmt.Sprintf("Novo contato pelo site: %s (%s)", data.Name, lead.Subject),
		HTMLBody: htmlBody,
		TextBody: text,
	}, nil
}

// WhatsAppLinkForPhone builds a wa.me link for a Brazilian phone number.
// Numbers with area code but no country code get the 55 prefix.
func WhatsAppLinkForPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case len(digits) == 10 || len(digits) == 11:
		digits = "55" + digits
	case len(digits) < 10:
		return ""
	}
	return "https://wa.me/" + digits
}

// EmailNotifier mails the attorney about each lead without blocking the request
type EmailNotifier struct {
	sender  EmailSender
	to      string
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewEmailNotifier creates a notifier for recipient; an empty recipient or nil sender disables it
func NewEmailNotifier(sender EmailSender, recipient string) *EmailNotifier {
	return &EmailNotifier{sender: sender, to: recipient, timeout: 15 * time.Second}
}

// NotifyLead builds the notification and sends it in the background; failures are only logged
func (n *EmailNotifier) NotifyLead(lead *models.Lead) {
	if n.sender == nil || n.to == "" {
		return
	}
	email, err := BuildLeadNotificationEmail(n.to, lead)
	if err != nil {
		metrics.LeadNotifications.WithLabelValues("error").Inc()
		logger.Error("Failed to build lead notification", zap.Error(err))
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.sender.Send(ctx, email); err != nil {
			metrics.LeadNotifications.WithLabelValues("error").Inc()
			logger.Error("Failed to send lead notification", zap.String("lead_id", lead.ID), zap.Error(err))
			return
		}
		metrics.LeadNotifications.WithLabelValues("sent").Inc()
	}()
}

// Wait blocks until queued notifications finish; called on shutdown
func (n *EmailNotifier) Wait() {
	n.wg.Wait()
}
