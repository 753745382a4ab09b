package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var ErrCaptchaMissing = errors.New("captcha token missing")

// Turnstile verifies Cloudflare Turnstile tokens posted with the contact form
type Turnstile struct {
	secret   string
	hostname string // when set, tokens solved on other hosts are rejected
	client   *http.Client
	endpoint string
}

type turnstileResult struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// NewTurnstile creates a verifier; a nil client gets a 10 second timeout
func NewTurnstile(secret, hostname string, client *http.Client) *Turnstile {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Turnstile{secret: secret, hostname: hostname, client: client, endpoint: turnstileVerifyURL}
}

// Verify reports whether token was solved by a visitor from ip
func (t *Turnstile) Verify(ctx context.Context, token, ip string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Turnstile.Verify")
	defer span.End()

	if strings.TrimSpace(token) == "" {
		return false, ErrCaptchaMissing
	}

	form := url.Values{"secret": {t.secret}, "response": {token}}
	if ip != "" {
		form.Set("remoteip", ip)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "siteverify unreachable")
		return false, fmt.Errorf("failed to reach siteverify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var result turnstileResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode siteverify response: %w", err)
	}
	span.SetAttributes(attribute.Bool("captcha.success", result.Success), attribute.String("captcha.hostname", result.Hostname))

	if !result.Success {
		return false, fmt.Errorf("token rejected: %s", strings.Join(result.ErrorCodes, ", "))
	}
	if t.hostname != "" && !strings.EqualFold(result.Hostname, t.hostname) {
		return false, fmt.Errorf("token solved on %q, expected %q", result.Hostname, t.hostname)
	}
	return true, nil
}
