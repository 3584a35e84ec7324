package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const adminContextKey contextKey = "admin"

// RequireAdmin validates the Bearer token on protected routes and stores
// its claims in the request context.
func RequireAdmin(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeAuthError(w, http.StatusUnauthorized, "authorization header is required")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeAuthError(w, http.StatusUnauthorized, "authorization header must be a Bearer token")
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if role, _ := claims["role"].(string); role != "admin" {
				writeAuthError(w, http.StatusForbidden, "admin privileges required")
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminNameFromContext returns the display name of the authenticated
// admin, set by RequireAdmin.
func GetAdminNameFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(adminContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("admin claims not found in context")
	}
	name, ok := claims["name"].(string)
	if !ok || name == "" {
		return "", errors.New("missing 'name' claim in token")
	}
	return name, nil
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
