// internal/repository/postgres/auth_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"tour-admin/internal/domain/auth"
	xerrors "tour-admin/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindAdminByEmail returns the active admin account registered under email.
// Customers and inactive accounts are reported as not found.
func (r *AuthRepository) FindAdminByEmail(ctx context.Context, email string) (*auth.AdminAccount, error) {
	query := `
		SELECT id, name, email, password, role, is_active
		FROM users
		WHERE LOWER(email) = LOWER($1) AND role = 'admin' AND is_active = true
		LIMIT 1
	`

	var acct auth.AdminAccount
	err := r.db.QueryRow(ctx, query, email).Scan(
		&acct.ID, &acct.Name, &acct.Email, &acct.PasswordHash, &acct.Role, &acct.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	return &acct, nil
}
