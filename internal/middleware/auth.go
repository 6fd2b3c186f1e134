// internal/middleware/auth.go
package middleware

import (
    "context"
    "encoding/json"
    "log"
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"

    "github.com/elecmate/campaign-backend/internal/repository"
)

type contextKey string

const adminIDKey contextKey = "adminUserID"

// AdminID returns the authenticated admin's user id from the request context.
func AdminID(ctx context.Context) string {
    id, _ := ctx.Value(adminIDKey).(string)
    return id
}

// AdminOnly verifies the bearer token and requires the caller's profile to
// carry a non-null admin_role before any action runs.
func AdminOnly(jwtSecret string, profiles repository.ProfileRepositoryInterface) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            header := r.Header.Get("Authorization")
            if !strings.HasPrefix(header, "Bearer ") {
                unauthorized(w, "missing bearer token")
                return
            }
            tokenStr := strings.TrimPrefix(header, "Bearer ")

            claims := &jwt.RegisteredClaims{}
            _, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
                return []byte(jwtSecret), nil
            }, jwt.WithValidMethods([]string{"HS256"}))
            if err != nil || claims.Subject == "" {
                unauthorized(w, "invalid bearer token")
                return
            }

            role, err := profiles.GetAdminRole(claims.Subject)
            if err != nil {
                log.Println("⚠️ admin role lookup failed:", err)
                unauthorized(w, "could not verify admin role")
                return
            }
            if role == nil {
                unauthorized(w, "admin access required")
                return
            }

            ctx := context.WithValue(r.Context(), adminIDKey, claims.Subject)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func unauthorized(w http.ResponseWriter, reason string) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusUnauthorized)
    json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized: " + reason})
}
