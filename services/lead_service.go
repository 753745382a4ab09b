package services

import (
	"context"
	"errors"

	"lawyer_landing_go/logger"
	"lawyer_landing_go/metrics"
	"lawyer_landing_go/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var ErrCaptchaFailed = errors.New("captcha verification failed")

// LeadNotifier is told about every stored lead
type LeadNotifier interface {
	NotifyLead(lead *models.Lead)
}

// CaptchaVerifier checks a challenge token
type CaptchaVerifier func(ctx context.Context, token, ip string) (bool, error)

// Submission is one POST of the contact form
type Submission struct {
	Input        models.LeadInput
	CaptchaToken string
	Meta         LeadMeta
}

// LeadService runs a form submission end to end: captcha, insert, notification
type LeadService struct {
	notifier LeadNotifier
	captcha  CaptchaVerifier
}

// NewLeadService creates the service. A nil captcha disables verification;
// a nil notifier disables notifications.
func NewLeadService(notifier LeadNotifier, captcha CaptchaVerifier) *LeadService {
	return &LeadService{notifier: notifier, captcha: captcha}
}

// TurnstileVerifier returns a CaptchaVerifier for the given secret, or nil when unset.
// A non-empty hostname pins tokens to that host.
func TurnstileVerifier(secret, hostname string) CaptchaVerifier {
	if secret == "" {
		return nil
	}
	return NewTurnstile(secret, hostname, nil).Verify
}

// Submit verifies the captcha and submits the input through the visitor's form
func (s *LeadService) Submit(ctx context.Context, form *ContactForm, sub Submission) (*models.Lead, error) {
	ctx, span := tracer.Start(ctx, "LeadService.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("lead.source", sub.Meta.Source))

	if form.State() == FormSubmitting {
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeInFlight).Inc()
		return nil, ErrSubmissionInFlight
	}

	if s.captcha != nil {
		ok, err := s.captcha(ctx, sub.CaptchaToken, sub.Meta.IPAddress)
		if err != nil || !ok {
			metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeCaptcha).Inc()
			logger.Warn("Turnstile verification failed", zap.String("ip", sub.Meta.IPAddress), zap.Error(err))
			span.SetStatus(codes.Error, "captcha")
			return nil, ErrCaptchaFailed
		}
	}

	lead, err := form.SubmitInput(ctx, sub.Input, sub.Meta)
	switch {
	case err == nil:
	case errors.Is(err, ErrSubmissionInFlight):
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeInFlight).Inc()
		return nil, err
	case errors.Is(err, ErrInvalidLead):
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	default:
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}

	metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	span.SetAttributes(attribute.String("lead.id", lead.ID), attribute.String("lead.subject", lead.Subject))
	logger.Info("Lead submitted", zap.String("id", lead.ID), zap.String("subject", lead.Subject), zap.String("source", lead.Source))

	if s.notifier != nil {
		s.notifier.NotifyLead(lead)
	}
	return lead, nil
}
