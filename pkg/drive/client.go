package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/signtide/signtide/pkg/account"
)

// Client is a thin JSON-over-HTTP Session implementation talking to a
// check-in gateway. The gateway owns the service's real wire protocol;
// this client only shuttles normalized requests and responses.
type Client struct {
	base  string
	http  *http.Client
	cred  account.Credential
	token string
}

// NewDialer returns a Dialer producing gateway-backed sessions. One Client
// serves exactly one account; the orchestrator dials per account.
func NewDialer(baseURL string, timeout time.Duration) Dialer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return func(cred account.Credential) Session {
		return &Client{
			base: baseURL,
			cred: cred,
			http: &http.Client{Timeout: timeout},
		}
	}
}

// Login authenticates the session against the gateway
func (c *Client) Login(ctx context.Context) error {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{c.cred.Username, c.cred.Password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/v1/login", req, &resp); err != nil {
		return &AuthError{Err: err}
	}
	c.token = resp.Token
	return nil
}

// SignPersonal performs one personal-space check-in
func (c *Client) SignPersonal(ctx context.Context) (SignResult, error) {
	var resp signResponse
	if err := c.post(ctx, "/v1/sign/personal", nil, &resp); err != nil {
		return SignResult{}, &ActionError{Kind: "personal", Err: err}
	}
	return resp.result(), nil
}

// SignFamily performs one family-space check-in
func (c *Client) SignFamily(ctx context.Context, familyID string) (SignResult, error) {
	req := struct {
		FamilyID string `json:"family_id"`
	}{familyID}

	var resp signResponse
	if err := c.post(ctx, "/v1/sign/family", req, &resp); err != nil {
		return SignResult{}, &ActionError{Kind: "family", Err: err}
	}
	return resp.result(), nil
}

// Families lists the family groups the account belongs to
func (c *Client) Families(ctx context.Context) ([]Family, error) {
	var resp struct {
		Families []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"families"`
	}
	if err := c.get(ctx, "/v1/families", &resp); err != nil {
		return nil, err
	}

	families := make([]Family, 0, len(resp.Families))
	for _, f := range resp.Families {
		families = append(families, Family{ID: f.ID, Name: f.Name})
	}
	return families, nil
}

// Capacity reads the account's storage totals
func (c *Client) Capacity(ctx context.Context) (CapacitySnapshot, error) {
	var resp struct {
		PersonalBytes int64 `json:"personal_bytes"`
		FamilyBytes   int64 `json:"family_bytes"`
	}
	if err := c.get(ctx, "/v1/capacity", &resp); err != nil {
		return CapacitySnapshot{}, err
	}
	return CapacitySnapshot{
		PersonalBytes: resp.PersonalBytes,
		FamilyBytes:   resp.FamilyBytes,
	}, nil
}

type signResponse struct {
	AlreadySigned bool  `json:"already_signed"`
	BonusMB       int64 `json:"bonus_mb"`
}

func (r signResponse) result() SignResult {
	return SignResult{AlreadySigned: r.AlreadySigned, BonusMB: r.BonusMB}
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
