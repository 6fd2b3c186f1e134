// internal/repository/identity_repository.go
package repository

import (
    "database/sql"

    "github.com/elecmate/campaign-backend/internal/model"
)

// identityPageSize matches the auth store's bulk listing page size.
const identityPageSize = 1000

// IdentityRepositoryInterface defines the auth store methods used by the services
type IdentityRepositoryInterface interface {
    GetByID(id string) (*model.Identity, error)
    ListAll() ([]model.Identity, error)
}

// IdentityRepository reads the auth store's user table
type IdentityRepository struct {
    DB *sql.DB
}

// GetByID resolves a user id to its identity row, returning nil when not found
func (r *IdentityRepository) GetByID(id string) (*model.Identity, error) {
    query := `SELECT id, email, last_sign_in_at FROM auth_users WHERE id = $1`
    var ident model.Identity
    err := r.DB.QueryRow(query, id).Scan(&ident.ID, &ident.Email, &ident.LastSignInAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &ident, nil
}

// ListAll fetches every identity row, paging through the store in fixed-size
// batches the way the auth store's bulk listing works.
func (r *IdentityRepository) ListAll() ([]model.Identity, error) {
    identities := []model.Identity{}
    offset := 0

    for {
        query := `
            SELECT id, email, last_sign_in_at
            FROM auth_users
            ORDER BY id
            LIMIT $1 OFFSET $2
        `
        rows, err := r.DB.Query(query, identityPageSize, offset)
        if err != nil {
            return nil, err
        }

        n := 0
        for rows.Next() {
            var ident model.Identity
            if err := rows.Scan(&ident.ID, &ident.Email, &ident.LastSignInAt); err != nil {
                rows.Close()
                return nil, err
            }
            identities = append(identities, ident)
            n++
        }
        if err := rows.Err(); err != nil {
            rows.Close()
            return nil, err
        }
        rows.Close()

        if n < identityPageSize {
            return identities, nil
        }
        offset += identityPageSize
    }
}

var _ IdentityRepositoryInterface = (*IdentityRepository)(nil)
