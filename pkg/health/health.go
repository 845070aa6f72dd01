package health

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Result is the outcome of one reachability probe
type Result struct {
	Healthy   bool
	Message   string
	CheckedAt time.Time
	Duration  time.Duration
}

// GatewayChecker probes the check-in gateway before a run starts, so a dead
// gateway is reported up front instead of as forty identical login timeouts.
type GatewayChecker struct {
	// URL is the full probe URL (typically <gateway>/healthz)
	URL string

	// ExpectedStatusMin is the minimum acceptable HTTP status code
	ExpectedStatusMin int

	// ExpectedStatusMax is the maximum acceptable HTTP status code
	ExpectedStatusMax int

	// Client is the HTTP client to use (allows custom configuration)
	Client *http.Client
}

// NewGatewayChecker creates a checker probing <baseURL>/healthz. Any HTTP
// answer below 500 counts as reachable: the probe asks "is the gateway up",
// not "is this account valid".
func NewGatewayChecker(baseURL string) *GatewayChecker {
	return &GatewayChecker{
		URL:               baseURL + "/healthz",
		ExpectedStatusMin: 200,
		ExpectedStatusMax: 499,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Check performs the reachability probe
func (g *GatewayChecker) Check(ctx context.Context) Result {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL, nil)
	if err != nil {
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("failed to create request: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("request failed: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}
	defer resp.Body.Close()

	healthy := resp.StatusCode >= g.ExpectedStatusMin && resp.StatusCode <= g.ExpectedStatusMax

	message := fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	if !healthy {
		message = fmt.Sprintf("%s (expected %d-%d)", message, g.ExpectedStatusMin, g.ExpectedStatusMax)
	}

	return Result{
		Healthy:   healthy,
		Message:   message,
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

// WithTimeout sets the probe timeout
func (g *GatewayChecker) WithTimeout(timeout time.Duration) *GatewayChecker {
	g.Client.Timeout = timeout
	return g
}

// WithStatusRange sets the acceptable status code range
func (g *GatewayChecker) WithStatusRange(min, max int) *GatewayChecker {
	g.ExpectedStatusMin = min
	g.ExpectedStatusMax = max
	return g
}
