// internal/db/db.go
package db

import (
    "database/sql"
    "fmt"

    _ "github.com/lib/pq"
    "log"
)

// Open connects to Postgres and verifies the connection.
func Open(databaseURL string) (*sql.DB, error) {
    conn, err := sql.Open("postgres", databaseURL)
    if err != nil {
        return nil, fmt.Errorf("failed to connect to DB: %w", err)
    }

    if err = conn.Ping(); err != nil {
        return nil, fmt.Errorf("failed to ping DB: %w", err)
    }

    log.Println("✅ Connected to database")
    return conn, nil
}
