package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecclesia-app/ecclesia-backend/pkg/config"
	"github.com/ecclesia-app/ecclesia-backend/pkg/logger"
)

func testRouter() http.Handler {
	cfg := &config.Config{
		App:  config.AppConfig{Env: "test", Port: "8080"},
		JWT:  config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 15},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(cfg, logg, Deps{})
}

func TestRouterHealthLive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Ecclesia-Env") != "test" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-Ecclesia-Env"))
	}
}

func TestRouterPublicPing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterProtectedRouteRequiresToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterSchedulerRequiresLeaderRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scheduler/suggest", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
