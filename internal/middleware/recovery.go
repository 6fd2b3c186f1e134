// internal/middleware/recovery.go
package middleware

import (
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "runtime/debug"
)

const maxStackLen = 2048

// Recovery turns a handler panic into the standard error response, with a
// truncated stack for operator debugging.
func Recovery(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                stack := debug.Stack()
                if len(stack) > maxStackLen {
                    stack = stack[:maxStackLen]
                }
                log.Printf("⚠️ panic serving %s: %v\n%s", r.URL.Path, rec, stack)

                w.Header().Set("Content-Type", "application/json")
                w.WriteHeader(http.StatusBadRequest)
                json.NewEncoder(w).Encode(map[string]string{
                    "error": fmt.Sprintf("internal error: %v", rec),
                    "stack": string(stack),
                })
            }
        }()
        next.ServeHTTP(w, r)
    })
}
