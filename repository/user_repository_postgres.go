package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quote-desk/domain"
)

const usersSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id        SERIAL PRIMARY KEY,
		name      TEXT NOT NULL,
		email     TEXT NOT NULL,
		phone     TEXT NOT NULL DEFAULT '',
		status    TEXT NOT NULL DEFAULT 'active',
		policies  INTEGER NOT NULL DEFAULT 0,
		join_date TEXT NOT NULL DEFAULT ''
	)
`

const userColumns = `id, name, email, phone, status, policies, join_date`

// UserRepositoryPostgres stores users in Postgres.
type UserRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewPostgresPool parses dbURL and opens a connection pool.
func NewPostgresPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

func NewUserRepositoryPostgres(pool *pgxpool.Pool) *UserRepositoryPostgres {
	return &UserRepositoryPostgres{pool: pool}
}

// Migrate creates the users table and inserts the seed users into an
// empty table.
func (r *UserRepositoryPostgres) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, usersSchema); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, u := range SeedUsers {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			u.ID, u.Name, u.Email, u.Phone, u.Status, u.Policies, u.JoinDate,
		)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	_, err := r.pool.Exec(ctx, `SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))`)
	if err != nil {
		return fmt.Errorf("reset users sequence: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Status, &u.Policies, &u.JoinDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	return u, err
}

func (r *UserRepositoryPostgres) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepositoryPostgres) Get(ctx context.Context, id int) (domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepositoryPostgres) Create(ctx context.Context, u domain.User) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, phone, status, policies, join_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		u.Name, u.Email, u.Phone, u.Status, u.Policies, u.JoinDate,
	)
	created, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepositoryPostgres) Update(ctx context.Context, id int, patch domain.UserPatch) (domain.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer tx.Rollback(ctx)

	u, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return domain.User{}, err
	}
	u = patch.Apply(u)

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET name = $2, email = $3, phone = $4, status = $5, policies = $6, join_date = $7
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Phone, u.Status, u.Policies, u.JoinDate,
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return u, tx.Commit(ctx)
}

func (r *UserRepositoryPostgres) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
