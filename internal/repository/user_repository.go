package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-service/internal/domain"
)

// UserRepository defines persistence access for users. Lookups return
// (nil, nil) when no row matches; storage errors propagate unchanged.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByNormalizedMailAddress(ctx context.Context, normalizedMailAddress string) (*domain.User, error)
	GetByNormalizedUserName(ctx context.Context, normalizedUserName string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = "id, mail_address, user_name, password_hash"

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE id=$1 LIMIT 1`

	return r.queryOne(ctx, query, id)
}

func (r *userRepository) GetByNormalizedMailAddress(ctx context.Context, normalizedMailAddress string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE UPPER(mail_address)=$1 LIMIT 1`

	return r.queryOne(ctx, query, normalizedMailAddress)
}

func (r *userRepository) GetByNormalizedUserName(ctx context.Context, normalizedUserName string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE UPPER(user_name)=$1 LIMIT 1`

	return r.queryOne(ctx, query, normalizedUserName)
}

func (r *userRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, mail_address, user_name, password_hash)
        VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query,
		user.ID(),
		user.MailAddress(),
		user.UserName(),
		user.PasswordHash(),
	)
	return err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET mail_address=$1, user_name=$2, password_hash=$3
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		user.MailAddress(),
		user.UserName(),
		user.PasswordHash(),
		user.ID(),
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id=$1`

	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *userRepository) queryOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		id           uuid.UUID
		mailAddress  string
		userName     string
		passwordHash *string
	)
	if err := row.Scan(&id, &mailAddress, &userName, &passwordHash); err != nil {
		return nil, err
	}

	hash := ""
	if passwordHash != nil {
		hash = *passwordHash
	}
	return domain.LoadUser(id, mailAddress, userName, hash), nil
}
