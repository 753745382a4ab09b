package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lawyer_landing_go/config"
	"lawyer_landing_go/models"
)

// supabaseLeadRow is the record shape of the hosted leads table
type supabaseLeadRow struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// SupabaseLeadStore inserts leads through the Supabase REST (PostgREST) API
type SupabaseLeadStore struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// NewSupabaseLeadStore creates a store for the configured project.
// No client-side timeout is applied; the call settles on the service's own response or failure.
func NewSupabaseLeadStore(cfg *config.Config, client *http.Client) *SupabaseLeadStore {
	if client == nil {
		client = &http.Client{}
	}
	table := cfg.SupabaseLeadsTable
	if table == "" {
		table = "leads"
	}
	return &SupabaseLeadStore{
		baseURL: cfg.SupabaseURL,
		apiKey:  cfg.SupabaseAnonKey,
		table:   table,
		client:  client,
	}
}

func (s *SupabaseLeadStore) Kind() string { return "supabase" }

// Insert posts one row to /rest/v1/{table}
func (s *SupabaseLeadStore) Insert(ctx context.Context, lead *models.Lead) error {
	return observeInsert(ctx, s.Kind(), func(ctx context.Context) error {
		body, err := json.Marshal([]supabaseLeadRow{{
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			Subject:   lead.Subject,
			Message:   lead.Message,
			CreatedAt: lead.CreatedAt.UTC().Format(time.RFC3339Nano),
		}})
		if err != nil {
			return fmt.Errorf("failed to encode lead: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/rest/v1/"+s.table, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build supabase request: %w", err)
		}
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to reach supabase: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			return fmt.Errorf("supabase rejected lead (status %d): %s", resp.StatusCode, bytes.TrimSpace(msg))
		}
		return nil
	})
}
