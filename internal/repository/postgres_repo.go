package repository

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/aditraka/go-taskpilot-backend/internal/model"
)

// TokenStore is the persistence surface the credential resolver depends on.
type TokenStore interface {
	GetToken(ctx context.Context, userID string) (*model.Credential, error)
	UpsertToken(ctx context.Context, userID, token string) error
}

type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(dsn string) (*PostgresRepo, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &PostgresRepo{DB: db}, nil
}

func (r *PostgresRepo) RunMigrations(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS todoist_tokens (
            user_id    TEXT PRIMARY KEY,
            token      TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`)
	return err
}

// GetToken returns the stored credential for userID, or (nil, nil) when the
// user has never connected a token.
func (r *PostgresRepo) GetToken(ctx context.Context, userID string) (*model.Credential, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT user_id, token, updated_at
         FROM todoist_tokens WHERE user_id = $1 LIMIT 1`, userID)

	var c model.Credential
	err := row.Scan(&c.UserID, &c.Token, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepo) UpsertToken(ctx context.Context, userID, token string) error {
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO todoist_tokens (user_id, token, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (user_id) DO UPDATE SET
            token = EXCLUDED.token,
            updated_at = now()`, userID, token)
	return err
}
