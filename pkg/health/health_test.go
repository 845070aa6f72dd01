package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGatewayChecker_Reachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Errorf("expected /healthz probe, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	checker := NewGatewayChecker(server.URL)
	result := checker.Check(context.Background())

	if !result.Healthy {
		t.Errorf("Expected healthy, got unhealthy: %s", result.Message)
	}
	if result.Duration <= 0 {
		t.Error("Expected positive duration")
	}
}

func TestGatewayChecker_ClientErrorStillReachable(t *testing.T) {
	// A 404 means the gateway answered; the probe only cares that it is up
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewGatewayChecker(server.URL)
	result := checker.Check(context.Background())

	if !result.Healthy {
		t.Errorf("Expected healthy for 404, got unhealthy: %s", result.Message)
	}
}

func TestGatewayChecker_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	checker := NewGatewayChecker(server.URL)
	result := checker.Check(context.Background())

	if result.Healthy {
		t.Errorf("Expected unhealthy for 500, got healthy: %s", result.Message)
	}
}

func TestGatewayChecker_Unreachable(t *testing.T) {
	// Reserve a port and close it so nothing is listening
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	checker := NewGatewayChecker(url)
	result := checker.Check(context.Background())

	if result.Healthy {
		t.Error("Expected unhealthy for unreachable gateway")
	}
}

func TestGatewayChecker_CustomStatusRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewGatewayChecker(server.URL).WithStatusRange(200, 299)
	result := checker.Check(context.Background())

	if result.Healthy {
		t.Errorf("Expected unhealthy for 404 with strict range: %s", result.Message)
	}
}
