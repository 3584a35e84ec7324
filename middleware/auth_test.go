package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func protectedHandler(t *testing.T) http.Handler {
	return RequireAdmin(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, err := GetAdminNameFromContext(r.Context())
		if err != nil {
			t.Errorf("expected admin name in context: %v", err)
		}
		w.Write([]byte(name))
	}))
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"name": "admin",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedHandler(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "admin" {
		t.Fatalf("expected admin name in response, got %q", rec.Body.String())
	}
}

func TestRequireAdmin_Rejections(t *testing.T) {
	okClaims := jwt.MapClaims{"name": "admin", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", okClaims), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"name": "admin", "role": "admin", "exp": time.Now().Add(-time.Hour).Unix(),
		}), http.StatusUnauthorized},
		{"wrong role", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"name": "guest", "role": "viewer", "exp": time.Now().Add(time.Hour).Unix(),
		}), http.StatusForbidden},
	}

	handler := RequireAdmin(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
