package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lawyer_landing_go/metrics"
	"lawyer_landing_go/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

// LeadStore is the external collaborator that persists leads.
// Insert stores exactly one record atomically.
type LeadStore interface {
	Insert(ctx context.Context, lead *models.Lead) error
	Kind() string
}

// LeadLister is implemented by stores that can read leads back
type LeadLister interface {
	List(ctx context.Context, limit int) ([]models.Lead, error)
}

var tracer = otel.Tracer("lawyer_landing_go/services")

// GormLeadStore writes leads through gorm (sqlite, postgres or libsql)
type GormLeadStore struct {
	db *gorm.DB
}

// NewGormLeadStore creates a lead store backed by the given database
func NewGormLeadStore(db *gorm.DB) *GormLeadStore {
	return &GormLeadStore{db: db}
}

func (s *GormLeadStore) Kind() string { return "database" }

// Insert creates the lead row
func (s *GormLeadStore) Insert(ctx context.Context, lead *models.Lead) error {
	if s.db == nil {
		return errors.New("database not initialized")
	}
	return observeInsert(ctx, s.Kind(), func(ctx context.Context) error {
		if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
			return fmt.Errorf("failed to insert lead: %w", err)
		}
		return nil
	})
}

// List returns the most recent leads first
func (s *GormLeadStore) List(ctx context.Context, limit int) ([]models.Lead, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	var leads []models.Lead
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// observeInsert wraps a store insert with a span and latency metric
func observeInsert(ctx context.Context, kind string, insert func(context.Context) error) error {
	ctx, span := tracer.Start(ctx, "LeadStore.Insert")
	defer span.End()
	span.SetAttributes(attribute.String("lead_store.kind", kind))

	start := time.Now()
	err := insert(ctx)
	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	metrics.LeadStoreDuration.WithLabelValues(kind, status).Observe(time.Since(start).Seconds())
	return err
}
