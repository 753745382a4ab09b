package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead subjects offered by the contact form
const (
	SubjectRealEstate = "Imobiliário"
	SubjectFamily     = "Família"
	SubjectSuccession = "Sucessão"
	SubjectOther      = "Outro"
)

// DefaultSubject is preselected on a fresh form
const DefaultSubject = SubjectRealEstate

// SubjectOption is a selectable subject with its display label
type SubjectOption struct {
	Value string
	Label string
}

// SubjectOptions lists the subjects in display order
var SubjectOptions = []SubjectOption{
	{Value: SubjectRealEstate, Label: "Direito Imobiliário"},
	{Value: SubjectFamily, Label: "Direito de Família"},
	{Value: SubjectSuccession, Label: "Inventário / Sucessão"},
	{Value: SubjectOther, Label: "Outro Assunto"},
}

// Lead is a prospective client's submitted contact details and inquiry
type Lead struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Subject   string    `gorm:"not null;index" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;index" json:"created_at"`

	// Audit fields, never sent to the external backend
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`
	Source    string `json:"source,omitempty"`
}

// BeforeCreate hook to generate UUID
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Lead model
func (Lead) TableName() string {
	return "leads"
}

// LeadInput holds the five fields entered by the visitor
type LeadInput struct {
	Name    string `form:"name" json:"name" validate:"required,max=200"`
	Email   string `form:"email" json:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" json:"phone" validate:"required,max=40"`
	Subject string `form:"subject" json:"subject" validate:"required,oneof=Imobiliário Família Sucessão Outro"`
	Message string `form:"message" json:"message" validate:"required,max=5000"`
}

// EmptyLeadInput returns the default values of a fresh form
func EmptyLeadInput() LeadInput {
	return LeadInput{Subject: DefaultSubject}
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (in LeadInput) Trimmed() LeadInput {
	return LeadInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
}

// IsValidSubject checks if the subject is one of the offered options
func IsValidSubject(subject string) bool {
	for _, opt := range SubjectOptions {
		if opt.Value == subject {
			return true
		}
	}
	return false
}
