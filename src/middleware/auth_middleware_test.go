package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	validToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(42),
		"email":   "user@example.com",
		"role":    "PREMIUM",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	expiredToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKeyToken := signTestToken(t, "other-secret", jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + validToken, http.StatusOK},
		{"valid token without bearer prefix", validToken, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"wrong signing key", "Bearer " + wrongKeyToken, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = r.Context().Value("user_id").(int64)
				gotRole, _ = r.Context().Value("role").(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			JWTAuthMiddleware(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotUserID != 42 {
					t.Errorf("user_id in context = %d, want 42", gotUserID)
				}
				if gotRole != "PREMIUM" {
					t.Errorf("role in context = %q, want PREMIUM", gotRole)
				}
			}
		})
	}
}

func TestPremiumMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		role       interface{}
		wantStatus int
	}{
		{"premium role passes", "PREMIUM", http.StatusOK},
		{"normal role blocked", "NORMAL", http.StatusForbidden},
		{"missing role blocked", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/accounts/1/event-rules", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), "role", tt.role))
			}
			rec := httptest.NewRecorder()
			PremiumMiddleware(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestInternalTokenMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("matching token passes", func(t *testing.T) {
		t.Setenv("INTERNAL_API_TOKEN", "hunter2")
		req := httptest.NewRequest(http.MethodPost, "/api/internal/automation/run", nil)
		req.Header.Set("X-Internal-Token", "hunter2")
		rec := httptest.NewRecorder()
		InternalTokenMiddleware(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("wrong token blocked", func(t *testing.T) {
		t.Setenv("INTERNAL_API_TOKEN", "hunter2")
		req := httptest.NewRequest(http.MethodPost, "/api/internal/automation/run", nil)
		req.Header.Set("X-Internal-Token", "guess")
		rec := httptest.NewRecorder()
		InternalTokenMiddleware(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("unconfigured token blocks everything", func(t *testing.T) {
		t.Setenv("INTERNAL_API_TOKEN", "")
		req := httptest.NewRequest(http.MethodPost, "/api/internal/automation/run", nil)
		req.Header.Set("X-Internal-Token", "")
		rec := httptest.NewRecorder()
		InternalTokenMiddleware(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})
}
