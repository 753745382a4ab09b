package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"lawyer_landing_go/logger"
	"lawyer_landing_go/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultSuccessDisplay is how long the confirmation stays visible
const DefaultSuccessDisplay = 5 * time.Second

// FormState is the presentation state of the contact form
type FormState int

const (
	FormIdle FormState = iota
	FormSubmitting
	FormSuccess
	FormError
)

func (s FormState) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormSubmitting:
		return "submitting"
	case FormSuccess:
		return "success"
	case FormError:
		return "error"
	default:
		return fmt.Sprintf("FormState(%d)", int(s))
	}
}

var (
	ErrSubmissionInFlight = errors.New("lead submission already in flight")
	ErrInvalidLead        = errors.New("invalid lead")
	ErrSubmissionFailed   = errors.New("lead submission failed")
)

// ValidationError lists the fields that failed validation, keyed by form name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid lead: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidLead }

// LeadMeta carries request details stored next to the lead
type LeadMeta struct {
	IPAddress string
	UserAgent string
	Source    string
}

// ContactFormConfig configures a ContactForm
type ContactFormConfig struct {
	Clock          Clock
	SuccessDisplay time.Duration
	Validate       *validator.Validate
}

// ContactForm owns the input values and submission state of one visitor's form.
// A submission is a single insert; there is no retry and no queue.
type ContactForm struct {
	mu             sync.Mutex
	store          LeadStore
	clock          Clock
	validate       *validator.Validate
	successDisplay time.Duration

	state   FormState
	fields  models.LeadInput
	lastErr error
	revert  Timer
	gen     uint64
}

// NewContactForm creates an idle form with default values
func NewContactForm(store LeadStore, cfg ContactFormConfig) *ContactForm {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}
	if cfg.SuccessDisplay <= 0 {
		cfg.SuccessDisplay = DefaultSuccessDisplay
	}
	if cfg.Validate == nil {
		cfg.Validate = NewValidator()
	}
	return &ContactForm{
		store:          store,
		clock:          cfg.Clock,
		validate:       cfg.Validate,
		successDisplay: cfg.SuccessDisplay,
		state:          FormIdle,
		fields:         models.EmptyLeadInput(),
	}
}

// State returns the current presentation state
func (f *ContactForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fields returns the current input values
func (f *ContactForm) Fields() models.LeadInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// LastError returns the error of the last failed submission, if the form is in FormError
func (f *ContactForm) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Update replaces the input values. It is ignored while a submission is in flight.
func (f *ContactForm) Update(in models.LeadInput) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return false
	}
	f.fields = in
	if f.state == FormError {
		f.state = FormIdle
		f.lastErr = nil
	}
	return true
}

// Submit sends the current values to the lead store.
//
// While a submission is in flight any further call returns ErrSubmissionInFlight
// without touching the store. On success the fields reset and the form shows the
// confirmation until Dismiss or the success display elapses. On failure the
// fields are preserved.
func (f *ContactForm) Submit(ctx context.Context, meta LeadMeta) (*models.Lead, error) {
	return f.submit(ctx, nil, meta)
}

// SubmitInput stores in as the form values and submits them in one step,
// so a concurrent request cannot swap the values between the two.
func (f *ContactForm) SubmitInput(ctx context.Context, in models.LeadInput, meta LeadMeta) (*models.Lead, error) {
	return f.submit(ctx, &in, meta)
}

func (f *ContactForm) submit(ctx context.Context, in *models.LeadInput, meta LeadMeta) (*models.Lead, error) {
	f.mu.Lock()
	if f.state == FormSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if in != nil {
		f.fields = *in
	}

	// Blank-only values count as empty, but the values are stored as entered
	input := f.fields
	if err := ValidateLeadInput(f.validate, input.Trimmed()); err != nil {
		f.mu.Unlock()
		return nil, err
	}

	f.stopRevertLocked()
	f.state = FormSubmitting
	f.lastErr = nil
	f.mu.Unlock()

	lead := &models.Lead{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: f.clock.Now().UTC(),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Source:    meta.Source,
	}

	// A visitor leaving the page does not abort the insert; only the store's own response settles it
	insertErr := f.store.Insert(context.WithoutCancel(ctx), lead)

	f.mu.Lock()
	defer f.mu.Unlock()

	if insertErr != nil {
		f.state = FormError
		f.lastErr = fmt.Errorf("%w: %w", ErrSubmissionFailed, insertErr)
		logger.Error("Failed to submit lead",
			zap.String("store", f.store.Kind()),
			zap.String("subject", lead.Subject),
			zap.Error(insertErr),
		)
		return nil, f.lastErr
	}

	f.fields = models.EmptyLeadInput()
	f.state = FormSuccess
	f.gen++
	gen := f.gen
	f.revert = f.clock.AfterFunc(f.successDisplay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gen == gen && f.state == FormSuccess {
			f.state = FormIdle
			f.revert = nil
		}
	})
	return lead, nil
}

// Dismiss returns the form to its default presentation. No-op while in flight.
func (f *ContactForm) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	f.stopRevertLocked()
	f.gen++
	f.state = FormIdle
	f.lastErr = nil
}

func (f *ContactForm) stopRevertLocked() {
	if f.revert != nil {
		f.revert.Stop()
		f.revert = nil
	}
}

// NewValidator returns a validator that reports fields by their form names
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	"required": "Campo obrigatório",
	"email":    "Informe um e-mail válido",
	"oneof":    "Selecione um assunto da lista",
	"max":      "Texto muito longo",
}

// ValidateLeadInput checks the five fields, returning a *ValidationError
func ValidateLeadInput(v *validator.Validate, in models.LeadInput) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidLead, err)
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "Valor inválido"
		}
		out.Fields[fe.Field()] = msg
	}
	return out
}
