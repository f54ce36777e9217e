package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"perftrack/internal/domain/identity"
	"perftrack/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id int64
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := identity.HashPassword(password)
	if err != nil {
		return err
	}

	err = pool.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, first_name, last_name, role)
    VALUES ($1, $2, 'System', 'Admin', $3)
    RETURNING id
  `, email, hash, identity.RoleAdmin).Scan(&id)
	return err
}
